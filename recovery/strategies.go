package recovery

import (
	"context"
	"fmt"
)

// StrictStrategy implements a fail-fast recovery strategy.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnError(ctx context.Context, err error, location Location) Action {
	return ActionFail
}

// LenientStrategy gives every input one relaxed retry and fails on the second error.
type LenientStrategy struct {
	Errors []error
	tried  map[string]bool
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{tried: make(map[string]bool)}
}

func (s *LenientStrategy) OnError(ctx context.Context, err error, location Location) Action {
	s.Errors = append(s.Errors, fmt.Errorf("[%s] input %d (%s): %w", location.Component, location.Index, location.Path, err))
	if ctx.Err() != nil {
		return ActionFail
	}
	if s.tried == nil {
		s.tried = make(map[string]bool)
	}
	key := fmt.Sprintf("%d:%s", location.Index, location.Path)
	if s.tried[key] {
		return ActionFail
	}
	s.tried[key] = true
	return ActionFix
}
