package matcher

import (
	"fmt"
	"time"
)

type after time.Time

func (a after) Match(t time.Time) bool {
	return t.After(time.Time(a))
}

func (a after) String() string {
	return fmt.Sprintf("after %s", time.Time(a).Format(time.RFC3339Nano))
}

// After matches timestamps later than t, like "now()" of a transaction begun after t.
func After(t time.Time) Matcher[time.Time] {
	return after(t)
}
