package mocks

import (
	"sync"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Environment is an in-memory ports.Environment.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewEnvironment creates an environment holding the given variables.
func NewEnvironment(vars map[string]string) *Environment {
	env := &Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// Getenv returns the value of key or "".
func (e *Environment) Getenv(key string) string {
	v, _ := e.LookupEnv(key)
	return v
}

// LookupEnv returns the value of key and whether it is set.
func (e *Environment) LookupEnv(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

// Setenv sets key to value.
func (e *Environment) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
	return nil
}

// Ensure Environment implements ports.Environment.
var _ ports.Environment = (*Environment)(nil)
