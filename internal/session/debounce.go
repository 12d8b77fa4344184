package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// Debouncer evaluates queries on a worker pool once typing settles.
// A query issued before the delay elapses cancels the pending one.
// The delay is waited out on a timer, so workers only run settled queries
// and Schedule never waits for a free worker.
// One Debouncer may serve any number of sessions.
type Debouncer struct {
	pool  *ants.Pool
	delay time.Duration
	log   logger.Logger
	wg    sync.WaitGroup
}

// NewDebouncer creates a debouncer backed by a pool of workers goroutines.
func NewDebouncer(delay time.Duration, workers int, log logger.Logger) (*Debouncer, error) {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.NewNop()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create debounce pool: %w", err)
	}

	return &Debouncer{pool: pool, delay: delay, log: log}, nil
}

// Schedule issues text on s and evaluates it after the settle delay.
// onResult is only called for a result that was committed.
func (d *Debouncer) Schedule(s *Session, text string, onResult func(Result)) error {
	task, err := s.Begin(text)
	if err != nil {
		return err
	}

	d.wg.Add(1)
	time.AfterFunc(d.delay, func() { d.settle(task, onResult) })
	return nil
}

// settle hands a task whose delay elapsed to the pool, unless a newer
// query superseded it in the meantime.
func (d *Debouncer) settle(task *Task, onResult func(Result)) {
	select {
	case <-task.Done():
		d.log.Debug("Query superseded before evaluation",
			logger.String("query", task.Query()),
			logger.Uint64("seq", task.Seq()),
		)
		d.wg.Done()
		return
	default:
	}

	if err := d.pool.Submit(func() {
		defer d.wg.Done()
		d.run(task, onResult)
	}); err != nil {
		d.log.Warn("Query dropped", logger.Uint64("seq", task.Seq()), logger.Error(err))
		d.wg.Done()
	}
}

func (d *Debouncer) run(task *Task, onResult func(Result)) {
	res, err := task.Run(context.Background())
	switch {
	case errors.Is(err, ErrStale):
		d.log.Debug("Discarding stale result", logger.Uint64("seq", task.Seq()))
	case err != nil:
		d.log.Warn("Query dropped", logger.Error(err))
	case onResult != nil:
		onResult(res)
	}
}

// Wait blocks until every scheduled query has finished or been discarded.
func (d *Debouncer) Wait() {
	d.wg.Wait()
}

// Running is the number of busy workers.
func (d *Debouncer) Running() int {
	return d.pool.Running()
}

// Workers is the pool size.
func (d *Debouncer) Workers() int {
	return d.pool.Cap()
}

// Release waits for pending queries and frees the pool.
func (d *Debouncer) Release() {
	d.Wait()
	d.pool.Release()
}
