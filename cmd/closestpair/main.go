// Package main is a closest-pair solver speaking the bugfind protocol:
// it reads cases from stdin (or a file) and prints the nearest pair of each.
//
//	closestpair [-brute] [file]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/AndreyAkinshin/bugfind/internal/closestpair"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	solver := closestpair.DivideAndConquer
	var path string

	for _, arg := range args {
		switch {
		case arg == "-brute" || arg == "--brute":
			solver = closestpair.BruteForce
		case arg == "-h" || arg == "--help":
			fmt.Fprintln(stdout, "usage: closestpair [-brute] [file]")
			return 0
		case len(arg) > 1 && arg[0] == '-':
			fmt.Fprintf(stderr, "closestpair: unknown flag %q\n", arg)
			return 2
		case path != "":
			fmt.Fprintln(stderr, "closestpair: at most one input file")
			return 2
		default:
			path = arg
		}
	}

	in := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "closestpair: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	if err := closestpair.Solve(in, stdout, solver); err != nil {
		fmt.Fprintf(stderr, "closestpair: %v\n", err)
		return 1
	}
	return 0
}
