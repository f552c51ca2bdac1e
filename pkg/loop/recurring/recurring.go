// Package recurring decides how a loop.Task is repeated by whether it did something.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opst/mealplanner/pkg/loop"
)

// Task is a round which reports whether it has done something.
//
// Returns
//
// - T: passed to the next round. See loop.Task.
//
// - bool: true when the round did something, and there may be more to do.
//
// - error: error in the round.
type Task[T any] func(context.Context, T) (T, bool, error)

// Applied makes a loop.Task which decides the next round by p.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		v, updated, err := rt(ctx, t)
		return v, p.Next(updated, err)
	}
}

// Policy decides the next round from the result of a round.
type Policy interface {
	Next(updated bool, err error) loop.Next
	String() string
}

// ParsePolicy parses "forever", "forever:DURATION" and "backlog".
func ParsePolicy(s string) (Policy, error) {
	typ, param, hasParam := strings.Cut(s, ":")
	switch typ {
	case "forever":
		if param == "" {
			return Forever(0), nil
		}
		cooldown, err := time.ParseDuration(param)
		if err != nil {
			return nil, fmt.Errorf(`failed to parse %q as "forever:COOLDOWN": %w`, s, err)
		}
		if cooldown < 0 {
			return nil, fmt.Errorf(`cooldown should not be negative: %q`, s)
		}
		return Forever(cooldown), nil
	case "backlog":
		if hasParam {
			return nil, fmt.Errorf("backlog policy does not take parameters: %q", s)
		}
		return Backlog(), nil
	}
	return nil, fmt.Errorf("unknown policy: %q (should be one of forever[:COOLDOWN] or backlog)", s)
}

// Forever restarts immediately while there are things to do, otherwise after cooldown.
//
// Errors do not stop the loop.
func Forever(cooldown time.Duration) Policy {
	return forever(cooldown)
}

type forever time.Duration

func (f forever) String() string {
	return fmt.Sprintf("forever:%s", time.Duration(f))
}

func (f forever) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Continue(time.Duration(f))
}

// Backlog restarts immediately while there are things to do, otherwise stops.
func Backlog() Policy {
	return backlog{}
}

type backlog struct{}

func (backlog) String() string {
	return "backlog"
}

func (backlog) Next(updated bool, _ error) loop.Next {
	if updated {
		return loop.Continue(0)
	}
	return loop.Break(nil)
}

// UntilError stops the loop with the error of a round, otherwise follows p.
func UntilError(p Policy) Policy {
	return untilError{base: p}
}

type untilError struct {
	base Policy
}

func (u untilError) String() string {
	return fmt.Sprintf("%s (until error)", u.base)
}

func (u untilError) Next(updated bool, err error) loop.Next {
	if err != nil {
		return loop.Break(err)
	}
	return u.base.Next(updated, err)
}
