package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of vast.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
