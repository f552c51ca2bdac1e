package matcher

import "fmt"

type Matcher[T any] interface {
	Match(T) bool
	String() string
}

type anyMatcher[T any] struct{}

func Any[T any]() Matcher[T]                       { return anyMatcher[T]{} }
func (a anyMatcher[T]) Match(T) bool               { return true }
func (a anyMatcher[T]) String() string             { return "(match any)" }
func (a anyMatcher[T]) Format(s fmt.State, _ rune) { fmt.Fprint(s, a.String()) }

type equal[T interface{ Equal(T) bool }] struct{ v T }

func Equal[T interface{ Equal(T) bool }](v T) Matcher[T] { return equal[T]{v: v} }
func (e equal[T]) Match(t T) bool                        { return t.Equal(e.v) }
func (e equal[T]) String() string                        { return fmt.Sprintf("%+v", e.v) }
func (e equal[T]) Format(s fmt.State, _ rune)            { fmt.Fprint(s, e.String()) }

type eqeq[T comparable] struct{ v T }

func EqEq[T comparable](v T) Matcher[T]      { return eqeq[T]{v: v} }
func (e eqeq[T]) Match(t T) bool             { return t == e.v }
func (e eqeq[T]) String() string             { return fmt.Sprintf("%+v", e.v) }
func (e eqeq[T]) Format(s fmt.State, _ rune) { fmt.Fprint(s, e.String()) }

type null[T any] struct{}

// Null matches nil pointers.
func Null[T any]() Matcher[*T]               { return null[T]{} }
func (null[T]) Match(t *T) bool              { return t == nil }
func (null[T]) String() string               { return "(null)" }
func (n null[T]) Format(s fmt.State, _ rune) { fmt.Fprint(s, n.String()) }

type notNull[T any] struct{ m Matcher[T] }

// NotNull matches non-nil pointers whose value matches m.
func NotNull[T any](m Matcher[T]) Matcher[*T] { return notNull[T]{m: m} }
func (n notNull[T]) Match(t *T) bool          { return t != nil && n.m.Match(*t) }
func (n notNull[T]) String() string           { return fmt.Sprintf("(not null, %s)", n.m) }
func (n notNull[T]) Format(s fmt.State, _ rune) {
	fmt.Fprint(s, n.String())
}
