// Package environment provides the process environment adapter.
package environment

import (
	"os"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// OSEnvironment reads and writes the real process environment.
type OSEnvironment struct{}

// NewOSEnvironment creates a new OSEnvironment.
func NewOSEnvironment() *OSEnvironment {
	return &OSEnvironment{}
}

// Getenv returns the value of key.
func (OSEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of key and whether it is set.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Setenv sets key for the current process only.
func (OSEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Ensure OSEnvironment implements ports.Environment.
var _ ports.Environment = (*OSEnvironment)(nil)
