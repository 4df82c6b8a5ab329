package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"paydown/internal/core"
)

// MemoryStore is an in-memory Store used by tests and the memory
// backend. It mirrors the SQLite ordering guarantees: debts newest
// first, transactions reverse chronological.
type MemoryStore struct {
	mu         sync.RWMutex
	debts      map[int64]core.Debt
	txs        map[int64]core.Transaction
	syncStatus map[int64]string
	nextID     int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		debts:  make(map[int64]core.Debt),
		txs:    make(map[int64]core.Transaction),
		nextID: 1,
	}
}

func (m *MemoryStore) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryStore) ListDebts(_ context.Context, userID string, status core.DebtStatus) ([]core.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var debts []core.Debt
	for _, d := range m.debts {
		if d.UserID != userID {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		debts = append(debts, d)
	}
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].CreatedAt.Equal(debts[j].CreatedAt) {
			return debts[i].CreatedAt.After(debts[j].CreatedAt)
		}
		return debts[i].ID > debts[j].ID
	})
	return debts, nil
}

func (m *MemoryStore) GetDebt(_ context.Context, userID string, id int64) (core.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.debts[id]
	if !ok || d.UserID != userID {
		return core.Debt{}, ErrNotFound
	}
	return d, nil
}

func (m *MemoryStore) CreateDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.ID = m.allocID()
	m.debts[d.ID] = d
	return d, nil
}

func (m *MemoryStore) UpdateDebt(_ context.Context, d core.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.debts[d.ID]
	if !ok || existing.UserID != d.UserID {
		return ErrNotFound
	}
	d.CreatedAt = existing.CreatedAt
	m.debts[d.ID] = d
	return nil
}

func (m *MemoryStore) DeleteDebt(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.debts[id]
	if !ok || d.UserID != userID {
		return ErrNotFound
	}
	delete(m.debts, id)
	return nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, userID string, f TransactionFilter) ([]core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var txs []core.Transaction
	for _, tx := range m.txs {
		if tx.UserID != userID {
			continue
		}
		if !f.Start.IsZero() && tx.Date.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && tx.Date.After(f.End) {
			continue
		}
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID > txs[j].ID
	})
	if f.Limit > 0 && len(txs) > f.Limit {
		txs = txs[:f.Limit]
	}
	return txs, nil
}

func (m *MemoryStore) GetTransaction(_ context.Context, userID string, id int64) (core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.txs[id]
	if !ok || tx.UserID != userID {
		return core.Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (m *MemoryStore) CreateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	tx.ID = m.allocID()
	m.txs[tx.ID] = tx
	return tx, nil
}

func (m *MemoryStore) UpdateTransaction(_ context.Context, tx core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.txs[tx.ID]
	if !ok || existing.UserID != tx.UserID {
		return ErrNotFound
	}
	tx.CreatedAt = existing.CreatedAt
	m.txs[tx.ID] = tx
	return nil
}

func (m *MemoryStore) DeleteTransaction(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok || tx.UserID != userID {
		return ErrNotFound
	}
	delete(m.txs, id)
	return nil
}

// ListActiveScheduledDebts returns every active debt with a due day,
// across all users. Reminder worker only.
func (m *MemoryStore) ListActiveScheduledDebts(_ context.Context) ([]core.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var debts []core.Debt
	for _, d := range m.debts {
		if d.Status == core.StatusActive && d.HasSchedule() {
			debts = append(debts, d)
		}
	}
	sort.Slice(debts, func(i, j int) bool { return debts[i].ID < debts[j].ID })
	return debts, nil
}

// GetTransactionByID returns a transaction without owner scoping.
// Sync worker only.
func (m *MemoryStore) GetTransactionByID(_ context.Context, id int64) (core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.txs[id]
	if !ok {
		return core.Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (m *MemoryStore) MarkTransactionSynced(_ context.Context, id int64) error {
	return m.markSync(id, "synced")
}

func (m *MemoryStore) MarkTransactionSyncError(_ context.Context, id int64) error {
	return m.markSync(id, "error")
}

func (m *MemoryStore) markSync(id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txs[id]; !ok {
		return ErrNotFound
	}
	if m.syncStatus == nil {
		m.syncStatus = make(map[int64]string)
	}
	m.syncStatus[id] = status
	return nil
}

// SyncStatus reports the last recorded sync state for a transaction,
// "pending" when none was recorded. Test helper.
func (m *MemoryStore) SyncStatus(id int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.syncStatus[id]; ok {
		return s
	}
	return "pending"
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*SQLiteStore)(nil)
