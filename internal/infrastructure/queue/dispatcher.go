package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/api/metrics"
	"github.com/99minutos/tycoon-api/internal/core/domain"
)

const (
	defaultWorkers = 1
	channelBuffer  = 256
)

// ErrStopped is returned for jobs submitted after the dispatcher shut down.
var ErrStopped = errors.New("dispatcher stopped")

const (
	jobQueued int32 = iota
	jobClaimed
	jobAbandoned
)

type job struct {
	ctx   context.Context
	fn    func(ctx context.Context) error
	done  chan error
	state atomic.Int32
}

// claim marks a queued job as taken by the worker. It fails when the caller
// already gave up on it.
func (j *job) claim() bool {
	return j.state.CompareAndSwap(jobQueued, jobClaimed)
}

// abandon withdraws a job that no worker has picked up yet. Once a worker has
// claimed the job the caller must wait for its result.
func (j *job) abandon() bool {
	return j.state.CompareAndSwap(jobQueued, jobAbandoned)
}

// Dispatcher is the single-writer serialization point for user mutations.
// Jobs are routed to a fixed set of workers using consistent hashing on the
// lower-cased username, so at most one mutation per user is in flight and
// mutations for one user run in submission order. With one worker every
// mutation in the process is serialized.
type Dispatcher struct {
	workers []chan *job
	stopped chan struct{}
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// jobs still queued at that point fail with ErrStopped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.stopped)
	}()
}

// Do runs fn on the worker that owns key and waits for its result. A
// cancelled ctx only withdraws a job that has not started; once running, fn
// sees a context without cancellation and Do reports its outcome.
func (d *Dispatcher) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	select {
	case <-d.stopped:
		return ErrStopped
	default:
	}

	idx := d.shardIndex(key)
	j := &job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case d.workers[idx] <- j:
		metrics.WriterQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		if j.abandon() {
			return ctx.Err()
		}
	case <-d.stopped:
		if j.abandon() {
			return ErrStopped
		}
	}
	return <-j.done
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(domain.UserKey(key)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *job) {
	depth := metrics.WriterQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			depth.Set(float64(len(ch)))
			if !j.claim() {
				continue
			}
			if ctx.Err() != nil {
				j.done <- ErrStopped
				return
			}
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			err := j.fn(context.WithoutCancel(j.ctx))
			if err != nil {
				d.log.Debug().Err(err).Int("worker_id", id).Msg("mutation returned error")
			}
			j.done <- err
		}
	}
}
