package pallet

// Config holds global configuration for the runtime
var Config config = config{
	defaultBlockSize:  64,
	parallelChunkSize: 256,
}

type config struct {
	defaultBlockSize  int
	parallelChunkSize int
}

// DefaultBlockSize returns the block size used by pools whose component type
// does not declare one.
func (c *config) DefaultBlockSize() int {
	return c.defaultBlockSize
}

// SetDefaultBlockSize configures the fallback pool block size. A component
// type takes its block size when it is registered, so types registered before
// the call, and their pools, keep the old size.
func (c *config) SetDefaultBlockSize(n int) {
	if n > 0 {
		c.defaultBlockSize = n
	}
}

// ParallelChunkSize returns the number of entity ids handed to one worker
// during parallel dispatch.
func (c *config) ParallelChunkSize() int {
	return c.parallelChunkSize
}

// SetParallelChunkSize configures the parallel dispatch chunk size.
func (c *config) SetParallelChunkSize(n int) {
	if n > 0 {
		c.parallelChunkSize = n
	}
}
