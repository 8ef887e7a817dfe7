package engine

// FrameScheduler defers callbacks to the next frame, the way a browser's animation frame request does.
type FrameScheduler interface {
	// RequestFrame queues fn for the next Flush.
	//
	// Parameters:
	//   - fn: the frame callback
	RequestFrame(fn func())

	// Flush runs the callbacks queued before the call. Callbacks queued while flushing wait for the next Flush.
	Flush()

	// Pending reports how many callbacks are queued.
	Pending() int
}

// frameScheduler is the main-thread FrameScheduler driven by the window loop.
type frameScheduler struct {
	queue []func()
}

var _ FrameScheduler = &frameScheduler{}

// NewFrameScheduler creates an empty FrameScheduler. It is not safe for concurrent use;
// other goroutines go through Engine.Post.
func NewFrameScheduler() FrameScheduler {
	return &frameScheduler{}
}

func (s *frameScheduler) RequestFrame(fn func()) {
	if fn != nil {
		s.queue = append(s.queue, fn)
	}
}

func (s *frameScheduler) Flush() {
	pending := s.queue
	s.queue = nil
	for _, fn := range pending {
		fn()
	}
}

func (s *frameScheduler) Pending() int {
	return len(s.queue)
}
