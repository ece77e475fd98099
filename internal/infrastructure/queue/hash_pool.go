package queue

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrPoolStopped is returned when a job is submitted after the pool's context ended.
var ErrPoolStopped = errors.New("hash pool stopped")

type jobKind int

const (
	jobHash jobKind = iota
	jobCompare
)

type hashJob struct {
	kind      jobKind
	ctx       context.Context
	plaintext string
	hash      string
	result    chan hashResult
}

type hashResult struct {
	hash  string
	match bool
	err   error
}

// HashPool runs password hashing on a fixed set of workers so CPU-bound bcrypt
// work cannot grow with the number of in-flight requests. It implements
// ports.PasswordHasher; callers block until their job completes or ctx ends.
type HashPool struct {
	jobs   chan hashJob
	hasher ports.PasswordHasher
	log    zerolog.Logger
	size   int
	done   <-chan struct{}
}

// NewHashPool creates a pool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &HashPool{
		jobs:   make(chan hashJob, channelBuffer),
		hasher: hasher,
		log:    log,
		size:   numWorkers,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	p.done = ctx.Done()
	for i := 0; i < p.size; i++ {
		go p.runWorker(ctx, i)
	}
}

func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, hashJob{kind: jobHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

func (p *HashPool) Compare(ctx context.Context, hash, plaintext string) (bool, error) {
	res, err := p.submit(ctx, hashJob{kind: jobCompare, hash: hash, plaintext: plaintext})
	if err != nil {
		return false, err
	}
	return res.match, res.err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	select {
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	default:
	}

	job.ctx = ctx
	job.result = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
		metrics.HashPoolQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	}

	select {
	case res := <-job.result:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashPoolQueueDepth.Set(float64(len(p.jobs)))
			job.result <- p.process(job, id)
		}
	}
}

func (p *HashPool) process(job hashJob, id int) hashResult {
	// Skip work whose caller already gave up.
	if err := job.ctx.Err(); err != nil {
		return hashResult{err: err}
	}

	start := time.Now()
	var res hashResult
	switch job.kind {
	case jobHash:
		res.hash, res.err = p.hasher.Hash(job.ctx, job.plaintext)
		metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	case jobCompare:
		res.match, res.err = p.hasher.Compare(job.ctx, job.hash, job.plaintext)
		metrics.PasswordHashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
	}

	if res.err != nil {
		p.log.Error().Err(res.err).
			Int("worker_id", id).
			Msg("password hashing failed")
	}
	return res
}
