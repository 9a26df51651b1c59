package vm

// uiRequest represents a unit of work to be executed on the UI goroutine.
type uiRequest struct {
	fn   func() any
	done chan any
}

// uiWorker serializes all backend access through a single goroutine.
// Display surfaces and GPU device contexts are not structurally safe
// to share between threads, so rather than asserting safety, the
// registry confines every Surface/Device call to this worker and
// talks to it over a request/response channel pair.
type uiWorker struct {
	requests chan uiRequest
	quit     chan struct{}
}

// newUIWorker creates a uiWorker and starts the processing goroutine.
func newUIWorker() *uiWorker {
	w := &uiWorker{
		requests: make(chan uiRequest, 16),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// loop processes backend requests sequentially on a dedicated goroutine.
// On shutdown it drains the request buffer first, so a do racing stop
// still gets its answer instead of blocking forever.
func (w *uiWorker) loop() {
	for {
		select {
		case req := <-w.requests:
			req.done <- w.run(req.fn)
		case <-w.quit:
			for {
				select {
				case req := <-w.requests:
					req.done <- w.run(req.fn)
				default:
					return
				}
			}
		}
	}
}

// run executes a backend call, recovering from panics so a misbehaving
// backend cannot take down the runtime.
func (w *uiWorker) run(fn func() any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			registryLog.Errorf("backend panic: %v", r)
			out = nil
		}
	}()
	return fn()
}

// do submits a function for execution on the UI goroutine and blocks
// until it completes.
func (w *uiWorker) do(fn func() any) any {
	req := uiRequest{
		fn:   fn,
		done: make(chan any, 1),
	}
	w.requests <- req
	return <-req.done
}

// stop shuts down the worker goroutine.
func (w *uiWorker) stop() {
	close(w.quit)
}
