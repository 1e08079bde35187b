// Package memstore is an in-process Slot Store and Swap Ledger. Write
// transactions are serialised, staged on a copy of the state and published in
// one step on commit, so a failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"sync"
	"time"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/pkg/clock"
	"slot-swapper/internal/usecase/shared"

	"github.com/google/uuid"
)

type userRow struct {
	id        uuid.UUID
	name      string
	email     string
	role      string
	createdAt time.Time
}

type slotRow struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	title     string
	start     time.Time
	end       time.Time
	status    slot.Status
	createdAt time.Time
	updatedAt time.Time
}

type proposalRow struct {
	id                uuid.UUID
	proposerID        uuid.UUID
	counterpartID     uuid.UUID
	proposerSlotID    uuid.UUID
	counterpartSlotID uuid.UUID
	status            swap.Status
	createdAt         time.Time
	updatedAt         time.Time
	seq               uint64
}

type state struct {
	users     map[uuid.UUID]userRow
	slots     map[uuid.UUID]slotRow
	proposals map[uuid.UUID]proposalRow
	seq       uint64
}

func newState() *state {
	return &state{
		users:     make(map[uuid.UUID]userRow),
		slots:     make(map[uuid.UUID]slotRow),
		proposals: make(map[uuid.UUID]proposalRow),
	}
}

// clone copies the maps; rows are values so the copy is independent.
func (s *state) clone() *state {
	c := &state{
		users:     make(map[uuid.UUID]userRow, len(s.users)),
		slots:     make(map[uuid.UUID]slotRow, len(s.slots)),
		proposals: make(map[uuid.UUID]proposalRow, len(s.proposals)),
		seq:       s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.proposals {
		c.proposals[k] = v
	}
	return c
}

// WriteHook runs before every staged write with the operation name. A non-nil
// error aborts the transaction.
type WriteHook func(op string) error

// Store keeps no referential integrity between tables: a slot may name an
// owner that was never seeded, where Postgres reports KindForeignKeyViolated.
// Owners are resolved at read time and missing ones project as blank names.
type Store struct {
	writeMu sync.Mutex

	mu      sync.RWMutex
	current *state
	hook    WriteHook

	clock clock.Clock
}

func New(clk clock.Clock) *Store {
	return &Store{
		current: newState(),
		clock:   clk,
	}
}

// SetWriteHook installs or clears (nil) the write hook.
func (s *Store) SetWriteHook(h WriteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// SeedUser registers a user for read projections. Identity lives outside this
// service; the memory driver has no other way to learn names.
func (s *Store) SeedUser(id uuid.UUID, name, email, role string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.snapshot().clone()
	next.users[id] = userRow{id: id, name: name, email: email, role: role, createdAt: s.clock.Now()}
	s.publish(next)
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) publish(next *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
}

func (s *Store) writeHook() WriteHook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hook
}

// Within implements shared.UnitOfWork.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx := &memTx{
		staged: s.snapshot().clone(),
		hook:   s.writeHook(),
		clock:  s.clock,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.publish(tx.staged)
	return nil
}

type memTx struct {
	staged *state
	hook   WriteHook
	clock  clock.Clock
}

func (t *memTx) Slots() shared.SlotRepository {
	return &slotRepo{tx: t}
}

func (t *memTx) Proposals() shared.SwapLedger {
	return &ledgerRepo{tx: t}
}

func (t *memTx) Users() shared.UserRepository {
	return &userRepo{tx: t}
}

func (t *memTx) beforeWrite(op string) error {
	if t.hook == nil {
		return nil
	}
	return t.hook(op)
}
