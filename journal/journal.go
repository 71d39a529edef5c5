// Package journal records ledger notifications as an append-only event
// stream. Every successful transfer, approval, role change, pause
// transition, relayer rotation and upgrade lands here so external observers
// can replay what the ledger did. Events can be kept in memory or persisted
// to SQLite.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/account"
)

// Kind names the notification type.
type Kind string

const (
	KindTransfer         Kind = "transfer"
	KindApproval         Kind = "approval"
	KindRoleGranted      Kind = "role_granted"
	KindRoleRevoked      Kind = "role_revoked"
	KindRoleRenounced    Kind = "role_renounced"
	KindPaused           Kind = "paused"
	KindUnpaused         Kind = "unpaused"
	KindRelayerChanged   Kind = "relayer_changed"
	KindCommunityChanged Kind = "community_changed"
	KindUpgraded         Kind = "upgraded"
	KindReward           Kind = "reward"
	KindTip              Kind = "tip"
	KindDonation         Kind = "donation"
	KindRescue           Kind = "rescue"
	KindForwarded        Kind = "forwarded"
)

// Event is a single ledger notification. Transfer-shaped events use From/To
// with the zero address standing in for mint and burn counterparties.
// Everything else rides in Detail.
type Event struct {
	ID     string            `json:"id"`
	Seq    uint64            `json:"seq"`
	Kind   Kind              `json:"kind"`
	At     time.Time         `json:"at"`
	From   account.Address   `json:"from"`
	To     account.Address   `json:"to"`
	Amount *uint256.Int      `json:"amount,omitempty"`
	Detail map[string]string `json:"detail,omitempty"`
}

// Store persists journal events in sequence order.
type Store interface {
	// Append stores one event. Events arrive with Seq already assigned,
	// strictly increasing.
	Append(ctx context.Context, ev *Event) error

	// Read returns up to limit events with Seq > after, in order.
	// limit <= 0 means no limit.
	Read(ctx context.Context, after uint64, limit int) ([]*Event, error)

	Close() error
}

// Log assigns identity and sequence to events and hands them to a store.
// The ledger treats the journal as an observer: a failing store never fails
// the operation that emitted the event. The first store error is retained
// and exposed through Err.
type Log struct {
	mu    sync.Mutex
	store Store
	seq   uint64
	err   error
}

// NewLog creates a journal over store. A nil store gets an in-memory one.
func NewLog(store Store) *Log {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Log{store: store}
}

// Record stamps and appends one event.
func (l *Log) Record(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	ev.Seq = l.seq
	ev.ID = uuid.New().String()
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := l.store.Append(context.Background(), &ev); err != nil && l.err == nil {
		l.err = err
	}
}

// Read returns up to limit events with Seq > after.
func (l *Log) Read(ctx context.Context, after uint64, limit int) ([]*Event, error) {
	return l.store.Read(ctx, after, limit)
}

// Err returns the first store error seen by Record, if any.
func (l *Log) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the underlying store.
func (l *Log) Close() error {
	return l.store.Close()
}
