package pricerange

import (
	"context"
	"errors"

	"github.com/hearthside/configurator/pkg/application/dto"
	"github.com/hearthside/configurator/pkg/domain/entities"
)

// ErrWorkerClosed is returned for requests submitted after Close.
var ErrWorkerClosed = errors.New("price range worker closed")

// Worker runs price-range exploration off the interactive path. Requests
// are served one at a time by a single goroutine that owns a deep copy of
// the tree, so no state is shared with the caller while a batch runs.
type Worker struct {
	explorer *Explorer
	requests chan request
	closed   chan struct{}
}

type request struct {
	ctx     context.Context
	tree    *entities.Tree
	rules   *entities.TreeVersionRules
	options []*entities.PlanOption
	reply   chan reply
}

type reply struct {
	ranges []dto.ChoicePriceRange
	err    error
}

// NewWorker creates a worker and starts its goroutine.
func NewWorker() *Worker {
	w := &Worker{
		explorer: NewExplorer(),
		requests: make(chan request),
		closed:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	for {
		select {
		case req := <-w.requests:
			ranges, err := w.explorer.ChoicePriceRanges(req.ctx, req.tree, req.rules, req.options)
			req.reply <- reply{ranges: ranges, err: err}
		case <-w.closed:
			return
		}
	}
}

// PriceRanges submits one batch and blocks until the result message comes
// back. The worker computes on its own deep copy of the tree; the caller's
// tree is never touched. Cancelling the context abandons the batch.
func (w *Worker) PriceRanges(
	ctx context.Context,
	tree *entities.Tree,
	rules *entities.TreeVersionRules,
	options []*entities.PlanOption,
) ([]dto.ChoicePriceRange, error) {
	select {
	case <-w.closed:
		return nil, ErrWorkerClosed
	default:
	}

	req := request{
		ctx:     ctx,
		tree:    tree.Clone(),
		rules:   rules,
		options: options,
		reply:   make(chan reply, 1),
	}

	select {
	case w.requests <- req:
	case <-w.closed:
		return nil, ErrWorkerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.ranges, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the worker. In-flight requests finish; later requests fail
// with ErrWorkerClosed.
func (w *Worker) Close() {
	close(w.closed)
}
