// Package lifecycle holds shared startup/shutdown constants.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as graceful shutdown and
// startup pings.
const DefaultTimeout = 10 * time.Second
