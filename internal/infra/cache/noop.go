package cache

import (
	"context"
	"time"

	"slot-swapper/internal/usecase/shared"
)

// Noop is used when Redis is disabled. Every read misses.
type Noop struct{}

var _ shared.Cache = Noop{}

func (Noop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
func (Noop) Delete(context.Context, ...string)                  {}
func (Noop) DeleteByPrefix(context.Context, string)             {}
