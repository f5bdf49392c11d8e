// Package lifecycle holds shared shutdown constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of transports and workers.
const DefaultTimeout = 10 * time.Second
