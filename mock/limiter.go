package mock

import (
	"context"

	"github.com/fwojciec/webext"
)

var _ webext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webext.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, pageURL string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	return l.WaitFn(ctx, pageURL)
}
