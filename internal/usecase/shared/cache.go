package shared

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cache is the availability cache. It is never authoritative: implementations
// swallow backend failures, so Get reports a miss and writes are dropped.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	DeleteByPrefix(ctx context.Context, prefix string)
}

// Cache scopes. The scope is also the metric label.
const (
	ScopeOwnerSlots = "slots"
	ScopeSlot       = "slot"
	ScopeOffered    = "offered"
	ScopeProposals  = "proposals"
)

// OfferedPrefix covers every viewer's offered list.
const OfferedPrefix = ScopeOffered + ":"

func OwnerSlotsKey(ownerID uuid.UUID) string {
	return ScopeOwnerSlots + ":owner:" + ownerID.String()
}

func SlotKey(slotID uuid.UUID) string {
	return ScopeSlot + ":" + slotID.String()
}

func OfferedKey(viewerID uuid.UUID) string {
	return OfferedPrefix + "excluding:" + viewerID.String()
}

func ProposalsKey(userID uuid.UUID) string {
	return ScopeProposals + ":user:" + userID.String()
}

// ScopeOf returns the scope part of a key.
func ScopeOf(key string) string {
	scope, _, _ := strings.Cut(key, ":")
	return scope
}
