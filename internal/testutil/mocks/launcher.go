// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Launcher is a thread-safe test double for ports.Launcher.
type Launcher struct {
	mu      sync.RWMutex
	results map[string][]result.Result
	calls   []ports.Parameters
}

// NewLauncher creates a new Launcher mock.
func NewLauncher() *Launcher {
	return &Launcher{
		results: make(map[string][]result.Result),
		calls:   make([]ports.Parameters, 0),
	}
}

// AddResult registers the result for a file name and raw argument string.
// Registering the same invocation again queues another result; the last one
// is repeated once the queue is drained.
func (m *Launcher) AddResult(fileName, arguments string, res result.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := buildKey(fileName, arguments)
	m.results[key] = append(m.results[key], res)
}

// AddExit registers a process exit with the given code and output lines.
func (m *Launcher) AddExit(fileName, arguments string, code int, lines ...string) {
	m.AddResult(fileName, arguments, result.FromExit(code, lines))
}

// Start records the invocation and returns the registered result.
// Unregistered invocations fail like a missing executable.
func (m *Launcher) Start(_ context.Context, params ports.Parameters) result.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, params)

	key := buildKey(params.FileName, params.Arguments)
	queue, ok := m.results[key]
	if !ok || len(queue) == 0 {
		return result.NotFound(params.FileName).WithLines("no mock result for: " + params.CommandLine())
	}

	res := queue[0]
	if len(queue) > 1 {
		m.results[key] = queue[1:]
	}
	return res.WithLines()
}

// Calls returns all recorded invocations.
func (m *Launcher) Calls() []ports.LaunchCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.LaunchCall, len(m.calls))
	for i, p := range m.calls {
		calls[i] = ports.LaunchCall{
			FileName:   p.FileName,
			Arguments:  p.Arguments,
			WorkingDir: p.WorkingDir,
		}
	}
	return calls
}

// Parameters returns the full parameters of every recorded invocation.
func (m *Launcher) Parameters() []ports.Parameters {
	m.mu.RLock()
	defer m.mu.RUnlock()

	params := make([]ports.Parameters, len(m.calls))
	copy(params, m.calls)
	return params
}

// Reset clears all registered results and recorded calls.
func (m *Launcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string][]result.Result)
	m.calls = make([]ports.Parameters, 0)
}

func buildKey(fileName, arguments string) string {
	return fileName + "\x00" + arguments
}

// Ensure Launcher implements ports.Launcher.
var _ ports.Launcher = (*Launcher)(nil)
