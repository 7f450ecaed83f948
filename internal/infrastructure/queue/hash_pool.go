package queue

import (
	"context"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

const channelBuffer = 256

type hashJob struct {
	ctx       context.Context
	plaintext string
	digest    []byte
	verify    bool
	result    chan hashResult
}

type hashResult struct {
	digest []byte
	match  bool
	err    error
}

// HashPool bounds CPU-bound password hashing to a fixed set of workers so a
// burst of logins cannot starve request handling. It satisfies
// ports.PasswordHasher by delegating each job to the wrapped hasher.
type HashPool struct {
	hasher  ports.PasswordHasher
	jobs    chan hashJob
	workers int
	done    chan struct{}
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers goroutines.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &HashPool{
		hasher:  hasher,
		jobs:    make(chan hashJob, channelBuffer),
		workers: numWorkers,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after which pending and future calls fail with the caller's context or
// context.Canceled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
	p.log.Info().Int("workers", p.workers).Msg("hash pool started")
}

func (p *HashPool) Hash(ctx context.Context, plaintext string) ([]byte, error) {
	res, err := p.submit(ctx, hashJob{ctx: ctx, plaintext: plaintext})
	if err != nil {
		return nil, err
	}
	return res.digest, res.err
}

// Verify reports false when the job could not run to completion.
func (p *HashPool) Verify(ctx context.Context, plaintext string, digest []byte) bool {
	res, err := p.submit(ctx, hashJob{ctx: ctx, plaintext: plaintext, digest: digest, verify: true})
	if err != nil {
		p.log.Warn().Err(err).Msg("password verification abandoned")
		return false
	}
	return res.match
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.result = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, context.Canceled
	}

	select {
	case res := <-job.result:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.done:
		return hashResult{}, context.Canceled
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			if job.ctx.Err() != nil {
				continue
			}

			var res hashResult
			if job.verify {
				res.match = p.hasher.Verify(job.ctx, job.plaintext, job.digest)
			} else {
				res.digest, res.err = p.hasher.Hash(job.ctx, job.plaintext)
				if res.err != nil {
					p.log.Error().Err(res.err).Str("worker_id", worker).Msg("password hashing failed")
				}
			}
			metrics.HashOperationsTotal.WithLabelValues(opLabel(job.verify)).Inc()
			job.result <- res
		}
	}
}

func opLabel(verify bool) string {
	if verify {
		return "verify"
	}
	return "hash"
}
