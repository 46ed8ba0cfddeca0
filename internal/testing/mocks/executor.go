// Package mocks provides shared test doubles for bugfind packages.
package mocks

import (
	"context"
	"sync"

	"github.com/AndreyAkinshin/bugfind/internal/runner"
)

// Executor stands in for *runner.Runner.
// Use NewExecutor() to create instances with a fluent builder API.
type Executor struct {
	outputs map[string]func(call int) string
	errs    map[string]error

	mu     sync.Mutex
	calls  []string
	inputs []string
	counts map[string]int
}

// NewExecutor creates an executor that answers every program with "0 0 0 0".
func NewExecutor() *Executor {
	return &Executor{
		outputs: make(map[string]func(int) string),
		errs:    make(map[string]error),
		counts:  make(map[string]int),
	}
}

// WithOutput makes the named program always print out.
func (m *Executor) WithOutput(program, out string) *Executor {
	m.outputs[program] = func(int) string { return out }
	return m
}

// WithOutputFunc makes the named program print fn(n) on its n-th run,
// counting from 1.
func (m *Executor) WithOutputFunc(program string, fn func(call int) string) *Executor {
	m.outputs[program] = fn
	return m
}

// WithError makes every run of the named program fail with err.
func (m *Executor) WithError(program string, err error) *Executor {
	m.errs[program] = err
	return m
}

// Run implements the hunter's executor interface.
func (m *Executor) Run(_ context.Context, p runner.Program, input string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, p.Name)
	m.inputs = append(m.inputs, input)
	m.counts[p.Name]++
	n := m.counts[p.Name]
	m.mu.Unlock()

	if err := m.errs[p.Name]; err != nil {
		return "", err
	}
	if fn, ok := m.outputs[p.Name]; ok {
		return fn(n), nil
	}
	return "0 0 0 0", nil
}

// Test inspection methods

// Calls returns the program names in the order they were run.
func (m *Executor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.calls))
	copy(result, m.calls)
	return result
}

// Inputs returns the stdin text of every run, in call order.
func (m *Executor) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.inputs))
	copy(result, m.inputs)
	return result
}

// CallCount returns how many times the named program ran.
func (m *Executor) CallCount(program string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[program]
}

// Reset clears call tracking state.
func (m *Executor) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.inputs = nil
	m.counts = make(map[string]int)
	m.mu.Unlock()
}
