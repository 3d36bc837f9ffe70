// scanner/defaults.go
package scanner

const (
	// DefaultRoot is the directory recursive searches start from.
	DefaultRoot = "."

	// DefaultLineBufferSize is the read buffer of a LineSource. Longer lines are still read whole.
	DefaultLineBufferSize = 64 * 1024

	// DefaultQueueDepth is how many pending tasks and deliveries each worker may have queued.
	DefaultQueueDepth = 2
)
