package grade

import (
	"errors"
	"fmt"
	"strings"
)

// Grade is a letter-grade token such as "B+".
type Grade string

// Letter grades on the 4.0 scale.
const (
	A      Grade = "A"
	AMinus Grade = "A-"
	BPlus  Grade = "B+"
	B      Grade = "B"
	BMinus Grade = "B-"
	CPlus  Grade = "C+"
	C      Grade = "C"
	CMinus Grade = "C-"
	DPlus  Grade = "D+"
	D      Grade = "D"
	F      Grade = "F"
)

// ErrUnknownGrade is returned by Parse for tokens outside the scale.
var ErrUnknownGrade = errors.New("unknown grade")

// order is the display order offered to users.
var order = []Grade{A, AMinus, BPlus, B, BMinus, CPlus, C, CMinus, DPlus, D, F}

// tenths holds grade points multiplied by ten so sums stay exact.
var tenths = map[Grade]int{
	A:      40,
	AMinus: 37,
	BPlus:  33,
	B:      30,
	BMinus: 27,
	CPlus:  23,
	C:      20,
	CMinus: 17,
	DPlus:  13,
	D:      10,
	F:      0,
}

// Entry pairs a grade with its point value.
type Entry struct {
	Grade  Grade   `json:"grade"`
	Points float64 `json:"points"`
}

// Parse converts user input into a Grade. Surrounding whitespace and letter
// case are ignored.
func Parse(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGrade, s)
	}
	return g, nil
}

// All returns every grade in display order, best first.
func All() []Grade {
	out := make([]Grade, len(order))
	copy(out, order)
	return out
}

// Scale returns the full grade-to-points table in display order.
func Scale() []Entry {
	out := make([]Entry, 0, len(order))
	for _, g := range order {
		out = append(out, Entry{Grade: g, Points: g.Points()})
	}
	return out
}

// Valid reports whether g is one of the eleven scale tokens.
func (g Grade) Valid() bool {
	_, ok := tenths[g]
	return ok
}

// Points returns the grade-point value of g.
// It panics if g is not on the scale; callers obtain grades through Parse.
func (g Grade) Points() float64 {
	return float64(g.Tenths()) / 10
}

// Tenths returns the grade-point value of g times ten.
func (g Grade) Tenths() int {
	t, ok := tenths[g]
	if !ok {
		panic(fmt.Sprintf("grade: %q is not on the scale", string(g)))
	}
	return t
}

func (g Grade) String() string {
	return string(g)
}
