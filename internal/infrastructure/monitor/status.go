package monitor

import "time"

// Status is the point-in-time health snapshot served by /health. Only the
// PostgreSQL flag gates writes; Redis and the buffer are reported for
// operators but stay advisory.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}
