// Package testcase generates and encodes the randomized point sets fed to the
// compared programs.
//
// Wire format, one case per stream:
//
//	n
//	x1 y1
//	...
//	xn yn
//	0
//
// Coordinates are written with two decimals. The trailing "0" tells the
// consuming program that no further cases follow.
package testcase

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// Terminator is the line that ends the input stream.
const Terminator = "0"

// TestCase is a single generated point set.
type TestCase struct {
	Points []r2.Point
}

// N returns the number of points in the case.
func (tc TestCase) N() int {
	return len(tc.Points)
}

// String renders the case in wire format, including the terminating line.
func (tc TestCase) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(len(tc.Points)))
	sb.WriteByte('\n')
	for _, p := range tc.Points {
		sb.WriteString(FormatCoord(p.X))
		sb.WriteByte(' ')
		sb.WriteString(FormatCoord(p.Y))
		sb.WriteByte('\n')
	}
	sb.WriteString(Terminator)
	sb.WriteByte('\n')
	return sb.String()
}

// FormatCoord formats a coordinate with two decimals.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Parse reads a single case in wire format.
// The point count must be followed by exactly that many coordinate lines and
// then the terminating "0" line. Blank lines are ignored.
func Parse(text string) (TestCase, error) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return TestCase{}, fmt.Errorf("empty input")
	}

	n, err := strconv.Atoi(lines[0])
	if err != nil {
		return TestCase{}, fmt.Errorf("line 1: invalid point count %q", lines[0])
	}
	if n <= 0 {
		return TestCase{}, fmt.Errorf("line 1: point count must be positive, got %d", n)
	}
	if len(lines) < n+2 {
		return TestCase{}, fmt.Errorf("expected %d points and a terminating %q line, got %d lines", n, Terminator, len(lines))
	}

	points := make([]r2.Point, 0, n)
	for i := 1; i <= n; i++ {
		p, err := parsePoint(lines[i])
		if err != nil {
			return TestCase{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		points = append(points, p)
	}

	if lines[n+1] != Terminator {
		return TestCase{}, fmt.Errorf("line %d: expected terminating %q, got %q", n+2, Terminator, lines[n+1])
	}
	if len(lines) > n+2 {
		return TestCase{}, fmt.Errorf("line %d: unexpected content after terminator", n+3)
	}

	return TestCase{Points: points}, nil
}

func parsePoint(line string) (r2.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return r2.Point{}, fmt.Errorf("expected 2 coordinates, got %d in %q", len(fields), line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return r2.Point{}, fmt.Errorf("invalid x coordinate %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return r2.Point{}, fmt.Errorf("invalid y coordinate %q", fields[1])
	}
	return r2.Point{X: x, Y: y}, nil
}

func nonEmptyLines(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
