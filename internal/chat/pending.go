package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingKeyPrefix namespaces pending-order keys in Redis.
const pendingKeyPrefix = "pending_order:"

// pendingTTL bounds how long a proposed order waits for confirmation.
const pendingTTL = 30 * time.Minute

// PendingOrder is an approved proposal awaiting the patient's confirmation.
type PendingOrder struct {
	PatientID  string          `json:"patient_id"`
	Items      []CandidateItem `json:"items"`
	ProposedAt time.Time       `json:"proposed_at"`
}

// PendingOrderStore keeps at most one pending proposal per patient.
type PendingOrderStore interface {
	Put(ctx context.Context, pending PendingOrder) error
	// Pop returns and clears the patient's pending proposal; nil when none.
	Pop(ctx context.Context, patientID string) (*PendingOrder, error)
}

// MemoryPendingStore is the in-process variant for dev and tests.
type MemoryPendingStore struct {
	mu      sync.Mutex
	pending map[string]PendingOrder
	now     func() time.Time
}

// NewMemoryPendingStore creates an empty in-memory pending store.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{pending: make(map[string]PendingOrder), now: time.Now}
}

// Put stores the proposal, replacing any previous one for the patient.
func (s *MemoryPendingStore) Put(ctx context.Context, pending PendingOrder) error {
	if pending.PatientID == "" {
		return errors.New("chat: pending order patient id required")
	}
	if pending.ProposedAt.IsZero() {
		pending.ProposedAt = s.now().UTC()
	}
	s.mu.Lock()
	s.pending[pending.PatientID] = pending
	s.mu.Unlock()
	return nil
}

// Pop returns and clears the proposal, expiring stale ones.
func (s *MemoryPendingStore) Pop(ctx context.Context, patientID string) (*PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[patientID]
	if !ok {
		return nil, nil
	}
	delete(s.pending, patientID)
	if s.now().Sub(p.ProposedAt) > pendingTTL {
		return nil, nil
	}
	return &p, nil
}

// RedisPendingStore keeps proposals in Redis with a TTL, surviving process
// restarts and shared across instances.
type RedisPendingStore struct {
	redis *redis.Client
}

// NewRedisPendingStore creates a Redis-backed pending store.
func NewRedisPendingStore(redisClient *redis.Client) *RedisPendingStore {
	if redisClient == nil {
		return nil
	}
	return &RedisPendingStore{redis: redisClient}
}

// Put stores the proposal under the patient's key with the pending TTL.
func (s *RedisPendingStore) Put(ctx context.Context, pending PendingOrder) error {
	if pending.PatientID == "" {
		return errors.New("chat: pending order patient id required")
	}
	if pending.ProposedAt.IsZero() {
		pending.ProposedAt = time.Now().UTC()
	}
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("chat: marshal pending order: %w", err)
	}
	if err := s.redis.Set(ctx, pendingKey(pending.PatientID), data, pendingTTL).Err(); err != nil {
		return fmt.Errorf("chat: store pending order: %w", err)
	}
	return nil
}

// Pop atomically fetches and deletes the proposal via GETDEL.
func (s *RedisPendingStore) Pop(ctx context.Context, patientID string) (*PendingOrder, error) {
	data, err := s.redis.GetDel(ctx, pendingKey(patientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chat: fetch pending order: %w", err)
	}
	var p PendingOrder
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("chat: unmarshal pending order: %w", err)
	}
	return &p, nil
}

func pendingKey(patientID string) string {
	return pendingKeyPrefix + patientID
}
