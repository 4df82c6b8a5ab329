package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"paydown/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database. Dates are
// stored as RFC 3339 UTC strings so lexicographic comparison in SQL
// matches chronological order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const debtColumns = `id, user_id, name, lender, total_amount_satang, remaining_amount_satang,
	interest_rate, minimum_payment_satang, due_date_day, status, created_at`

func (s *SQLiteStore) ListDebts(ctx context.Context, userID string, status core.DebtStatus) ([]core.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// ListActiveScheduledDebts returns every active debt with a due day,
// across all users. Reminder worker only.
func (s *SQLiteStore) ListActiveScheduledDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+debtColumns+` FROM debts
		 WHERE status = 'active' AND due_date_day IS NOT NULL
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list scheduled debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (s *SQLiteStore) GetDebt(ctx context.Context, userID string, id int64) (core.Debt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE id = ? AND user_id = ?`, id, userID)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, ErrNotFound
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO debts (user_id, name, lender, total_amount_satang, remaining_amount_satang,
			interest_rate, minimum_payment_satang, due_date_day, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.UserID, d.Name, d.Lender, d.TotalAmount.Satang, d.RemainingAmount.Satang,
		d.InterestRate, d.MinimumPayment.Satang, nullableDay(d.DueDateDay), string(d.Status),
		d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Debt{}, fmt.Errorf("insert debt: %w", err)
	}
	d.ID, err = res.LastInsertId()
	if err != nil {
		return core.Debt{}, fmt.Errorf("debt insert id: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE debts SET name = ?, lender = ?, total_amount_satang = ?, remaining_amount_satang = ?,
			interest_rate = ?, minimum_payment_satang = ?, due_date_day = ?, status = ?
		 WHERE id = ? AND user_id = ?`,
		d.Name, d.Lender, d.TotalAmount.Satang, d.RemainingAmount.Satang,
		d.InterestRate, d.MinimumPayment.Satang, nullableDay(d.DueDateDay), string(d.Status),
		d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteDebt(ctx context.Context, userID string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM debts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res)
}

const txColumns = `id, user_id, type, category, amount_satang, note, transaction_date, debt_id, created_at`

func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}
	if !f.Start.IsZero() {
		query += ` AND transaction_date >= ?`
		args = append(args, f.Start.UTC().Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		query += ` AND transaction_date <= ?`
		args = append(args, f.End.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY transaction_date DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// GetTransactionByID fetches a transaction without owner scoping. Only
// the sync worker uses it: messages carry the record id, not the owner.
func (s *SQLiteStore) GetTransactionByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, type, category, amount_satang, note, transaction_date, debt_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.UserID, string(tx.Type), string(tx.Category), tx.Amount.Satang, tx.Note,
		tx.Date.UTC().Format(time.RFC3339), nullableID(tx.DebtID),
		tx.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	tx.ID, err = res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction insert id: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET type = ?, category = ?, amount_satang = ?, note = ?,
			transaction_date = ?, debt_id = ?, sync_status = 'pending'
		 WHERE id = ? AND user_id = ?`,
		string(tx.Type), string(tx.Category), tx.Amount.Satang, tx.Note,
		tx.Date.UTC().Format(time.RFC3339), nullableID(tx.DebtID),
		tx.ID, tx.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

// MarkTransactionSynced records a successful append to the backup sheet.
func (s *SQLiteStore) MarkTransactionSynced(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return nil
}

// MarkTransactionSyncError flags a transaction whose sheet append failed.
func (s *SQLiteStore) MarkTransactionSyncError(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var (
		d         core.Debt
		dueDay    sql.NullInt64
		status    string
		createdAt string
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Lender,
		&d.TotalAmount.Satang, &d.RemainingAmount.Satang,
		&d.InterestRate, &d.MinimumPayment.Satang, &dueDay, &status, &createdAt)
	if err != nil {
		return core.Debt{}, err
	}
	if dueDay.Valid {
		d.DueDateDay = int(dueDay.Int64)
	}
	d.Status = core.DebtStatus(status)
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return d, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx        core.Transaction
		txType    string
		category  string
		debtID    sql.NullInt64
		txDate    string
		createdAt string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &txType, &category,
		&tx.Amount.Satang, &tx.Note, &txDate, &debtID, &createdAt)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TransactionType(txType)
	tx.Category = core.Category(category)
	if debtID.Valid {
		tx.DebtID = debtID.Int64
	}
	var parseErr error
	tx.Date, parseErr = time.Parse(time.RFC3339, txDate)
	if parseErr != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", txDate, parseErr)
	}
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return tx, nil
}

func nullableDay(day int) any {
	if day == 0 {
		return nil
	}
	return day
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// requireRow turns a zero-row mutation into ErrNotFound so ownership
// violations and missing records look identical to callers.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
