package amqp

import (
	"encoding/json"
	"time"
)

// TransactionSyncMessage asks the sync worker to mirror one transaction to
// the backup spreadsheet. It carries only the ID, the worker fetches the
// record from the database so it always writes the latest state.
type TransactionSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage creates a sync message for the given transaction
func NewTransactionSyncMessage(id int64) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionSyncMessageFromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// PaymentReminderMessage announces that a debt payment is coming up. It is
// published by the reminder worker for downstream notification channels.
type PaymentReminderMessage struct {
	DebtID       int64     `json:"debtId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	DaysUntilDue int       `json:"daysUntilDue"`
	Urgency      string    `json:"urgency"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m *PaymentReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PaymentReminderMessageFromJSON creates a message from JSON bytes
func PaymentReminderMessageFromJSON(data []byte) (*PaymentReminderMessage, error) {
	var msg PaymentReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
