package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// LogEntry is one recorded chat turn.
type LogEntry struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	Card      *Card     `json:"card_data,omitempty"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// LogStore persists chat turns for the history endpoint.
type LogStore interface {
	Append(ctx context.Context, entry LogEntry) error
	ListByPatient(ctx context.Context, patientID string, limit int) ([]LogEntry, error)
}

// MemoryLogStore keeps chat history in process memory.
type MemoryLogStore struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// NewMemoryLogStore creates an empty in-memory log store.
func NewMemoryLogStore() *MemoryLogStore {
	return &MemoryLogStore{}
}

// Append records a chat turn.
func (s *MemoryLogStore) Append(ctx context.Context, entry LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return nil
}

// ListByPatient returns the patient's turns in chronological order.
func (s *MemoryLogStore) ListByPatient(ctx context.Context, patientID string, limit int) ([]LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []LogEntry
	for _, e := range s.entries {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// PGQuerier is the pgx subset the Postgres log store needs.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresLogStore persists chat turns in Postgres, card as JSONB.
type PostgresLogStore struct {
	db PGQuerier
}

// NewPostgresLogStore creates a Postgres chat log store.
func NewPostgresLogStore(db PGQuerier) *PostgresLogStore {
	if db == nil {
		panic("chat: pgx querier required")
	}
	return &PostgresLogStore{db: db}
}

// Append records a chat turn.
func (s *PostgresLogStore) Append(ctx context.Context, entry LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	var cardJSON []byte
	if entry.Card != nil {
		var err error
		cardJSON, err = json.Marshal(entry.Card)
		if err != nil {
			return fmt.Errorf("chat: marshal card: %w", err)
		}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_logs (id, patient_id, message, reply, card_data, language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.PatientID, entry.Message, entry.Reply, cardJSON, entry.Language, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("chat: append log: %w", err)
	}
	return nil
}

// ListByPatient returns the patient's turns in chronological order.
func (s *PostgresLogStore) ListByPatient(ctx context.Context, patientID string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, patient_id, message, reply, card_data, language, created_at
		FROM chat_logs WHERE patient_id = $1
		ORDER BY created_at ASC LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("chat: list logs: %w", err)
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var cardJSON []byte
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Message, &e.Reply, &cardJSON, &e.Language, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("chat: scan log: %w", err)
		}
		if len(cardJSON) > 0 {
			var card Card
			if err := json.Unmarshal(cardJSON, &card); err != nil {
				return nil, fmt.Errorf("chat: unmarshal card: %w", err)
			}
			e.Card = &card
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat: log rows: %w", err)
	}
	return out, nil
}
