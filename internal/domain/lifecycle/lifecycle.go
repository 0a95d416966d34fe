// Package lifecycle holds shared timings for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop of long-lived resources.
const DefaultTimeout = 10 * time.Second
