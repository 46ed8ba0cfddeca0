// Package compare parses program answers and decides whether two distances
// agree.
package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// Answer is the pair of points a program reports as closest.
type Answer struct {
	P1 r2.Point
	P2 r2.Point
}

// Distance returns the Euclidean distance between the two points.
func (a Answer) Distance() float64 {
	return a.P2.Sub(a.P1).Norm()
}

// ParseError reports program output that is not four numbers.
type ParseError struct {
	Program string // Program role that produced the output
	Output  string // Output as received
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] malformed output %q: %s", e.Program, e.Output, e.Reason)
}

// ParseAnswer parses "x1 y1 x2 y2" as produced by program.
func ParseAnswer(program, output string) (Answer, error) {
	fields := strings.Fields(output)
	if len(fields) != 4 {
		return Answer{}, &ParseError{
			Program: program,
			Output:  output,
			Reason:  fmt.Sprintf("expected 4 numbers, got %d", len(fields)),
		}
	}

	var v [4]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Answer{}, &ParseError{
				Program: program,
				Output:  output,
				Reason:  fmt.Sprintf("token %d (%q) is not a number", i+1, field),
			}
		}
		v[i] = f
	}

	return Answer{
		P1: r2.Point{X: v[0], Y: v[1]},
		P2: r2.Point{X: v[2], Y: v[3]},
	}, nil
}
