package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// Quantity is an amount with a unit, like "1.5 cup".
//
// Amounts are summed regardless of units when quantities are merged,
// and then Unit becomes a comma separated list like "g, cup" (see MergeUnits).
type Quantity struct {
	Amount float64
	Unit   string
}

// resolution of amounts. Sums are rounded to this.
const amountResolution = 1e6

func roundAmount(a float64) float64 {
	return math.Round(a*amountResolution) / amountResolution
}

var vulgarFractions = map[string]float64{
	"½": 1.0 / 2, "⅓": 1.0 / 3, "⅔": 2.0 / 3,
	"¼": 1.0 / 4, "¾": 3.0 / 4,
	"⅛": 1.0 / 8, "⅜": 3.0 / 8, "⅝": 5.0 / 8, "⅞": 7.0 / 8,
}

// parseAmount parses a single token: "2", "1.5", "1/2" or "½".
func parseAmount(tok string) (float64, bool) {
	if f, ok := vulgarFractions[tok]; ok {
		return f, true
	}
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err := strconv.ParseUint(num, 10, 32)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseUint(den, 10, 32)
		if err != nil || d == 0 {
			return 0, false
		}
		return float64(n) / float64(d), true
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isFraction tells tok is written as a fraction: "½", or digits followed by "/" like "1/2".
//
// Words like "g/l" are not fractions but units.
func isFraction(tok string) bool {
	if _, ok := vulgarFractions[tok]; ok {
		return true
	}
	return tok != "" && '0' <= tok[0] && tok[0] <= '9' && strings.Contains(tok, "/")
}

// ParseQuantity reads a quantity expression.
//
// Accepted forms are "2", "1.5", "1/2", "1 1/2", "1½" and "1 ½",
// optionally followed by a unit ("2 cups", "1 1/2 tbsp").
// Empty expression means "one, without unit".
//
// Negative or malformed amounts cause ErrInvalidQuantity.
func ParseQuantity(expr string) (Quantity, error) {
	toks := strings.Fields(expr)
	if len(toks) == 0 {
		return Quantity{Amount: 1}, nil
	}

	// "1½" is split into "1" and "½".
	if head := toks[0]; len(head) > 1 {
		for vf := range vulgarFractions {
			if whole, ok := strings.CutSuffix(head, vf); ok && whole != "" {
				toks = append([]string{whole, vf}, toks[1:]...)
				break
			}
		}
	}

	amount, ok := parseAmount(toks[0])
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q does not start with a number", domerr.ErrInvalidQuantity, expr)
	}
	rest := toks[1:]

	if len(rest) != 0 && !isFraction(toks[0]) && !strings.Contains(toks[0], ".") && isFraction(rest[0]) {
		frac, ok := parseAmount(rest[0])
		if !ok {
			return Quantity{}, fmt.Errorf("%w: %q has broken fraction", domerr.ErrInvalidQuantity, expr)
		}
		amount += frac
		rest = rest[1:]
	}

	if len(rest) != 0 && isFraction(rest[0]) {
		return Quantity{}, fmt.Errorf("%w: %q has a fraction in its unit", domerr.ErrInvalidQuantity, expr)
	}

	if amount < 0 {
		return Quantity{}, fmt.Errorf("%w: %q is negative", domerr.ErrInvalidQuantity, expr)
	}

	return Quantity{Amount: roundAmount(amount), Unit: strings.Join(rest, " ")}, nil
}

// Add sums amounts and merges units.
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{
		Amount: roundAmount(q.Amount + o.Amount),
		Unit:   MergeUnits(q.Unit, o.Unit),
	}
}

// Scale multiplies the amount.
func (q Quantity) Scale(factor float64) Quantity {
	return Quantity{Amount: roundAmount(q.Amount * factor), Unit: q.Unit}
}

func (q Quantity) String() string {
	a := strconv.FormatFloat(q.Amount, 'f', -1, 64)
	if q.Unit == "" {
		return a
	}
	return a + " " + q.Unit
}

const unitSeparator = ", "

func splitUnits(u string) []string {
	ret := []string{}
	for _, s := range strings.Split(u, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ret = append(ret, s)
		}
	}
	return ret
}

// MergeUnits concatenates unit strings as a set.
//
// Units are compared case-insensitively. Units already in a are not repeated,
// and an empty side yields the other:
//
//	MergeUnits("g", "G")       == "g"
//	MergeUnits("g", "cup")     == "g, cup"
//	MergeUnits("g, cup", "cup") == "g, cup"
//	MergeUnits("", "cup")      == "cup"
func MergeUnits(a, b string) string {
	units := splitUnits(a)
	seen := map[string]struct{}{}
	for _, u := range units {
		seen[strings.ToLower(u)] = struct{}{}
	}
	for _, u := range splitUnits(b) {
		if _, ok := seen[strings.ToLower(u)]; ok {
			continue
		}
		seen[strings.ToLower(u)] = struct{}{}
		units = append(units, u)
	}
	return strings.Join(units, unitSeparator)
}
