// Package lifecycle holds shared constants for component start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of managed
// components (HTTP server, database pool).
const DefaultTimeout = 10 * time.Second
