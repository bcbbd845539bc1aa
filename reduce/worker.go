package reduce

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/bodgit/tileassist/palette"
)

// ErrSuperseded is returned to the caller of a request that was replaced by
// a newer one before it completed
var ErrSuperseded = errors.New("reduce: superseded by a newer request")

// Request is the unit of work handed to a Worker
type Request struct {
	Image  image.Image
	Config Config
}

type response struct {
	result *Result
	err    error
}

// Worker runs at most one reduction at a time. Starting a new request
// cancels the one in flight and its result is discarded.
type Worker struct {
	palette *palette.Palette

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewWorker returns a Worker reducing images onto p
func NewWorker(p *palette.Palette) *Worker {
	return &Worker{
		palette: p,
	}
}

func (w *Worker) start(ctx context.Context) (context.Context, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.seq++

	ctx, w.cancel = context.WithCancel(ctx)
	return ctx, w.seq
}

func (w *Worker) finish(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.seq {
		return false
	}
	w.cancel()
	w.cancel = nil
	return true
}

// Do runs req on its own goroutine and waits for the result. If another
// request is started, or Cancel is called, before this one completes then
// ErrSuperseded is returned.
func (w *Worker) Do(ctx context.Context, req Request) (*Result, error) {
	ctx, seq := w.start(ctx)

	out := make(chan response, 1)
	go func() {
		r, err := Reduce(ctx, w.palette, req.Image, req.Config)
		out <- response{r, err}
	}()
	resp := <-out

	if !w.finish(seq) {
		return nil, ErrSuperseded
	}

	return resp.result, resp.err
}

// Cancel stops and discards any request in flight
func (w *Worker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.seq++
}
