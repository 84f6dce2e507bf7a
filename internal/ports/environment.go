package ports

// Environment is the boundary to process environment variables.
// Domain code reads and writes PATH only through this interface.
type Environment interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}
