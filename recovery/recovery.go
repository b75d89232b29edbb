package recovery

import (
	"context"
	"fmt"
)

// Strategy decides what the merge driver does when the engine rejects an input.
// Anything other than ActionFix aborts the merge.
type Strategy interface {
	OnError(ctx context.Context, err error, location Location) Action
}

type Location struct {
	Path      string
	Index     int
	Component string
}

type Action int

const (
	ActionFail Action = iota
	// ActionFix re-appends the same input once with relaxed parsing.
	ActionFix
)

func (a Action) String() string {
	switch a {
	case ActionFail:
		return "fail"
	case ActionFix:
		return "fix"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

const (
	NameStrict  = "strict"
	NameLenient = "lenient"
)

// Parse builds a strategy from its configured name.
func Parse(name string) (Strategy, error) {
	switch name {
	case "", NameStrict:
		return NewStrictStrategy(), nil
	case NameLenient:
		return NewLenientStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown recovery strategy %q (want %s or %s)", name, NameStrict, NameLenient)
	}
}
