// Package mock provides test doubles for docchat interfaces using
// function fields.
package mock

import (
	"context"

	"github.com/amartinez/docchat"
)

// Interface compliance checks.
var (
	_ docchat.Provider = (*Provider)(nil)
	_ docchat.Stream   = (*Stream)(nil)
)

// Provider is a test double for docchat.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req docchat.Request) (docchat.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req docchat.Request) (docchat.Stream, error) {
	return p.StreamFn(ctx, req)
}

// Stream is a test double for docchat.Stream.
// Set the function fields for the methods you need.
type Stream struct {
	NextFn  func() (docchat.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (docchat.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. A nil CloseFn is a no-op.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
