// Package hashpool implements the dedicated worker pool that runs password
// hashing and verification off the request-serving goroutines.
//
// bcrypt work is deliberately slow. A burst of logins must neither stall the
// HTTP handlers nor fan out into unbounded parallel hashing, so all hash and
// verify requests funnel through one bounded dispatch queue consumed by a
// small, fixed set of long-lived workers. Each request carries its own
// single-use reply channel; the channel is the correlation mechanism, there is
// no shared result table and no request IDs.
package hashpool

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"authgate/config"
	"authgate/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultQueueFactor = 3

type operation uint8

const (
	opHash operation = iota + 1
	opVerify
)

// result is the outcome of one job, produced exactly once by exactly one
// worker and consumed by the caller that created the job.
type result struct {
	digest string
	match  bool
	err    error
}

// job is one queued unit of work plus its private reply channel. It is owned
// by the dispatch queue until a worker claims it; the reply channel is always
// buffered with capacity one so the worker's send can never block.
type job struct {
	op        operation
	plaintext string
	reference string
	reply     chan result
}

// Pool is the public entry point. It implements service.PasswordHasher and is
// safe for arbitrarily many concurrent callers. Constructed once at startup,
// closed once at shutdown.
type Pool struct {
	jobs chan job

	// mu guards closed and orders submissions against Close: a submitter
	// holds the read lock across its send, so the jobs channel can only be
	// closed once no send is in flight.
	mu     sync.RWMutex
	closed bool

	wg        sync.WaitGroup
	primitive Primitive
	logger    *slog.Logger
	workers   int

	active    atomic.Int64
	completed atomic.Uint64
	failed    atomic.Uint64
}

var _ service.PasswordHasher = (*Pool)(nil)

// Options sizes the pool. Zero values pick defaults: workers = available
// cores minus one (at least one), queue factor 3, bcrypt default cost.
type Options struct {
	Workers     int
	QueueFactor int
	BcryptCost  int

	// Primitive overrides the bcrypt implementation; used by tests.
	Primitive Primitive
}

// NewPool starts the workers immediately. The worker count and queue capacity
// are fixed for the lifetime of the pool.
func NewPool(opts Options, logger *slog.Logger) *Pool {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
	}

	queueFactor := opts.QueueFactor
	if queueFactor <= 0 {
		queueFactor = defaultQueueFactor
	}

	primitive := opts.Primitive
	if primitive == nil {
		primitive = newBcryptPrimitive(opts.BcryptCost)
	}

	p := &Pool{
		jobs:      make(chan job, workers*queueFactor),
		primitive: primitive,
		logger:    logger,
		workers:   workers,
	}

	p.wg.Add(workers)
	p.active.Add(int64(workers))
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// HashPassword submits a hash job and suspends the caller until the digest
// arrives, submission fails, or ctx is cancelled.
func (p *Pool) HashPassword(ctx context.Context, plaintext string) (string, error) {
	j := job{op: opHash, plaintext: plaintext, reply: make(chan result, 1)}
	if err := p.submit(ctx, j); err != nil {
		return "", err
	}

	res, err := p.await(ctx, j)
	if err != nil {
		return "", err
	}

	return res.digest, res.err
}

// VerifyPassword submits a verify job and suspends the caller until the
// outcome arrives. A mismatch is (false, nil), never an error.
func (p *Pool) VerifyPassword(ctx context.Context, plaintext, reference string) (bool, error) {
	j := job{op: opVerify, plaintext: plaintext, reference: reference, reply: make(chan result, 1)}
	if err := p.submit(ctx, j); err != nil {
		return false, err
	}

	res, err := p.await(ctx, j)
	if err != nil {
		return false, err
	}

	return res.match, res.err
}

// Close stops accepting new jobs, lets the workers drain and execute
// everything already queued, and returns once they have all exited. Safe to
// call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// submit enqueues the job, blocking while the queue is full. Submissions
// after Close fail fast; a submission already waiting for queue space when
// Close is called is still accepted and executed by the draining workers.
func (p *Pool) submit(ctx context.Context, j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return errors.Wrap(service.ErrHasherClosed, "hash pool submit")
	}

	select {
	case p.jobs <- j:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "hash pool submit cancelled")
	}
}

// await blocks on the job's private reply channel. Every accepted job is
// executed by exactly one worker, so the only way out is a reply or the
// caller's own ctx.
func (p *Pool) await(ctx context.Context, j job) (result, error) {
	select {
	case res := <-j.reply:
		return res, nil
	case <-ctx.Done():
		// The worker still runs the job to completion; its reply lands in the
		// buffered channel and is garbage collected. No leak.
		return result{}, errors.Wrap(ctx.Err(), "abandoned while awaiting hash result")
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	defer p.active.Add(-1)

	for j := range p.jobs {
		p.execute(id, j)
	}
}

// execute runs one job to completion and delivers its result. A panic inside
// the primitive degrades that single request to a lost reply; the worker
// itself survives.
func (p *Pool) execute(id int, j job) {
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.logger.Error("hash worker recovered from panic",
				slog.Int("worker", id), slog.Any("panic", r))
			p.deliver(id, j, result{err: errors.Wrap(service.ErrHasherReplyLost, "hash worker panicked")})
		}
	}()

	var res result
	switch j.op {
	case opHash:
		res.digest, res.err = p.primitive.Hash(j.plaintext)
	case opVerify:
		res.match, res.err = p.primitive.Verify(j.plaintext, j.reference)
	}

	if res.err != nil {
		p.failed.Add(1)
	} else {
		p.completed.Add(1)
	}
	p.deliver(id, j, res)
}

// deliver sends the result on the job's reply channel. The buffered slot and
// single-claim ownership make the send structurally non-blocking; an occupied
// slot would mean a duplicate delivery, so it is logged and dropped instead of
// blocking or crashing the worker.
func (p *Pool) deliver(id int, j job, res result) {
	select {
	case j.reply <- res:
	default:
		p.logger.Warn("hash pool reply dropped", slog.Int("worker", id))
	}
}

// Stats is a point-in-time snapshot of the pool, exposed for metrics.
type Stats struct {
	QueueDepth    int
	QueueCapacity int
	Workers       int
	ActiveWorkers int
	Completed     uint64
	Failed        uint64
}

// Snapshot reports the current pool state.
func (p *Pool) Snapshot() Stats {
	return Stats{
		QueueDepth:    len(p.jobs),
		QueueCapacity: cap(p.jobs),
		Workers:       p.workers,
		ActiveWorkers: int(p.active.Load()),
		Completed:     p.completed.Load(),
		Failed:        p.failed.Load(),
	}
}

// Params defines the dependencies for the fx-managed pool.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New is the fx constructor. The pool is closed on shutdown after the HTTP
// server has stopped accepting requests.
func New(params Params) *Pool {
	opts := Options{}
	if params.Config.HashPool != nil {
		opts.Workers = params.Config.HashPool.Workers
		opts.QueueFactor = params.Config.HashPool.QueueFactor
	}
	if params.Config.Auth != nil {
		opts.BcryptCost = params.Config.Auth.BcryptCost
	}

	pool := NewPool(opts, params.Logger)
	params.Logger.Info("hash pool started",
		slog.Int("workers", pool.workers),
		slog.Int("queueCapacity", cap(pool.jobs)))

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Close()

			return nil
		},
	})

	return pool
}
