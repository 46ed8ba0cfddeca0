package closestpair

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/geo/r2"
)

// Solve reads cases from r until a case with zero points (or end of input)
// and writes one "x1 y1 x2 y2" line per case to w, coordinates with two
// decimals. A case is a point count followed by that many "x y" pairs;
// line breaks are not significant.
func Solve(r io.Reader, w io.Writer, solve Solver) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	bw := bufio.NewWriter(w)

	for caseNum := 1; ; caseNum++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return bw.Flush()
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil || n < 0 {
			return fmt.Errorf("case %d: invalid point count %q", caseNum, sc.Text())
		}
		if n == 0 {
			return bw.Flush()
		}

		points := make([]r2.Point, n)
		for i := range points {
			x, err := nextFloat(sc)
			if err != nil {
				return fmt.Errorf("case %d, point %d: x: %w", caseNum, i+1, err)
			}
			y, err := nextFloat(sc)
			if err != nil {
				return fmt.Errorf("case %d, point %d: y: %w", caseNum, i+1, err)
			}
			points[i] = r2.Point{X: x, Y: y}
		}

		pair, err := solve(points)
		if err != nil {
			return fmt.Errorf("case %d: %w", caseNum, err)
		}
		fmt.Fprintf(bw, "%.2f %.2f %.2f %.2f\n", pair.P1.X, pair.P1.Y, pair.P2.X, pair.P2.Y)
	}
}

func nextFloat(sc *bufio.Scanner) (float64, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(sc.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", sc.Text())
	}
	return v, nil
}
