//go:build unit

package swap_test

import (
	"testing"
	"time"

	"slot-swapper/internal/domain/swap"
	"slot-swapper/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestNewProposal(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	mine, theirs := uuid.New(), uuid.New()

	tests := []struct {
		name                    string
		proposer, counterpart   uuid.UUID
		proposerSlot, theirSlot uuid.UUID
		errIs                   error
	}{
		{name: "pending between two users", proposer: alice, counterpart: bob, proposerSlot: mine, theirSlot: theirs},
		{name: "same slot twice", proposer: alice, counterpart: bob, proposerSlot: mine, theirSlot: mine, errIs: errs.ErrInvalidInput},
		{name: "same user twice", proposer: alice, counterpart: alice, proposerSlot: mine, theirSlot: theirs, errIs: errs.ErrSelfSwapRejected},
		{name: "missing party", proposer: alice, proposerSlot: mine, theirSlot: theirs, errIs: errs.ErrInvalidInput},
		{name: "missing slot", proposer: alice, counterpart: bob, proposerSlot: mine, errIs: errs.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := swap.NewProposal(tt.proposer, tt.counterpart, tt.proposerSlot, tt.theirSlot, now)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.IsPending())
			assert.True(t, p.References(mine))
			assert.True(t, p.References(theirs))
			assert.False(t, p.References(uuid.New()))
			assert.True(t, p.Involves(bob))
			assert.False(t, p.Involves(uuid.New()))
		})
	}
}

func TestProposalResolve(t *testing.T) {
	later := now.Add(time.Minute)
	newPending := func(t *testing.T) *swap.Proposal {
		t.Helper()
		p, err := swap.NewProposal(uuid.New(), uuid.New(), uuid.New(), uuid.New(), now)
		require.NoError(t, err)
		return p
	}

	t.Run("leaves pending exactly once", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Resolve(swap.OutcomeOf(true), later))
		assert.Equal(t, swap.StatusAccepted, p.Status())
		assert.Equal(t, later, p.UpdatedAt())

		assert.ErrorIs(t, p.Resolve(swap.StatusRejected, later), errs.ErrAlreadyResolved)
		assert.Equal(t, swap.StatusAccepted, p.Status())
	})

	t.Run("reject outcome", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Resolve(swap.OutcomeOf(false), later))
		assert.Equal(t, swap.StatusRejected, p.Status())
	})

	t.Run("pending is not an outcome", func(t *testing.T) {
		p := newPending(t)
		assert.ErrorIs(t, p.Resolve(swap.StatusPending, later), errs.ErrInvalidInput)
		assert.True(t, p.IsPending())
	})
}

func TestStatus(t *testing.T) {
	assert.False(t, swap.StatusPending.IsTerminal())
	assert.True(t, swap.StatusRejected.IsTerminal())
	assert.True(t, swap.StatusAccepted.IsValid())
	assert.False(t, swap.Status("CANCELLED").IsValid())
}
