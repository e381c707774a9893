package termgl

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Default settings: GOMAXPROCS workers, process-exiting fatal reporter
//	ctx := termgl.NewContext(80, 24)
//
//	// Single-threaded pipeline with a custom fatal reporter
//	ctx := termgl.NewContext(80, 24,
//	    termgl.WithWorkers(1),
//	    termgl.WithReporter(screen.Reporter()))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	workers           int
	reporter          Reporter
	primitiveCapacity int
	parallelThreshold int
	frameBuffer       *FrameBuffer
}

// DefaultParallelThreshold is the number of vertices below which the
// per-vertex stages run on the calling goroutine.
const DefaultParallelThreshold = 256

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		workers:           0, // GOMAXPROCS
		reporter:          nil,
		primitiveCapacity: 0, // primitive.DefaultCapacity
		parallelThreshold: DefaultParallelThreshold,
	}
}

// WithWorkers sets the number of goroutines used by the vertex and viewport
// stages. Zero or a negative value selects GOMAXPROCS.
func WithWorkers(n int) ContextOption {
	return func(o *contextOptions) {
		o.workers = n
	}
}

// WithReporter sets the collaborator notified of fatal pipeline conditions.
// The default reporter logs the error, prints it to stderr and exits the
// process with status 1.
func WithReporter(r Reporter) ContextOption {
	return func(o *contextOptions) {
		o.reporter = r
	}
}

// WithPrimitiveCapacity sets the initial size in bytes of the primitive
// store arena. The arena grows on demand; this only avoids early growth.
func WithPrimitiveCapacity(bytes int) ContextOption {
	return func(o *contextOptions) {
		o.primitiveCapacity = bytes
	}
}

// WithParallelThreshold sets the vertex count at which the per-vertex stages
// start being split across workers. Values below 1 are treated as 1.
func WithParallelThreshold(n int) ContextOption {
	return func(o *contextOptions) {
		o.parallelThreshold = max(n, 1)
	}
}

// WithFrameBuffer makes the Context render into fb instead of allocating its
// own. The width and height passed to NewContext are ignored.
//
// Example:
//
//	fb := termgl.NewFrameBuffer(80, 24)
//	ctx := termgl.NewContext(0, 0, termgl.WithFrameBuffer(fb))
func WithFrameBuffer(fb *FrameBuffer) ContextOption {
	return func(o *contextOptions) {
		o.frameBuffer = fb
	}
}
