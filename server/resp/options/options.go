package options

import "time"

// TernOptions configures the standalone server.
type TernOptions struct {
	// Addr is the tcp listen address.
	Addr string

	// RuntimeDir holds the instance lock file.
	RuntimeDir string

	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	KeepAliveTimeout time.Duration
}

func DefaultOptions() TernOptions {
	return TernOptions{
		Addr:       "127.0.0.1:6379",
		RuntimeDir: "./tern-data",
	}
}
