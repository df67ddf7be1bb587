// Package lifecycle holds shared timing values for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and client connections.
const DefaultTimeout = 10 * time.Second
