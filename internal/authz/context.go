package authz

import (
	"context"
)

type callerKey struct{}

// NewContext returns a copy of ctx carrying caller.
func NewContext(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// FromContext returns the caller stored in ctx, if any.
func FromContext(ctx context.Context) (*Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(*Caller)
	return caller, ok && caller != nil
}
