//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"slot-swapper/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("defaults to DB failure", func(t *testing.T) {
		err := infra.WrapRepoErr("failed to load slot", cause)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to load slot")
	})

	t.Run("explicit kind", func(t *testing.T) {
		err := infra.WrapRepoErr("slot state changed", nil, infra.KindConflict)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, "CONFLICT: slot state changed", err.Error())
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.False(t, infra.IsKind(cause, infra.KindDBFailure))
		assert.Empty(t, infra.KindOf(cause))
		assert.False(t, infra.IsKind(nil, ""))
	})
}

func TestKindOf(t *testing.T) {
	inner := infra.WrapRepoErr("proposal not found", nil, infra.KindNotFound)
	wrapped := fmt.Errorf("respond: %w", inner)

	assert.Equal(t, infra.KindNotFound, infra.KindOf(wrapped))
	assert.True(t, infra.IsKind(wrapped, infra.KindNotFound))
}

func TestKindExpected(t *testing.T) {
	for _, k := range []infra.RepositoryErrorKind{
		infra.KindNotFound, infra.KindDuplicateKey, infra.KindForeignKeyViolated, infra.KindConflict,
	} {
		assert.True(t, k.Expected(), k)
	}
	assert.False(t, infra.KindDBFailure.Expected())
}
