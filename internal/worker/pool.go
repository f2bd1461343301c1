package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"energen/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReportes       = "jobs:reportes_email"
	JobTypeReporteEmail = "reporte_email"

	// MaxAttempts is how many times a job runs before it is dead-lettered.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler runs one job type. A returned error is retried unless it is
// marked with Permanent.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// ── Dispatcher ────────────────────────────────────────────────────────────────

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporteEmail pushes a dashboard report email job.
func (d *Dispatcher) EnqueueReporteEmail(ctx context.Context, job dto.ReporteEmailJob) error {
	return d.enqueue(ctx, QueueReportes, JobTypeReporteEmail, job)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// ── Pool ──────────────────────────────────────────────────────────────────────

// Pool consumes QueueReportes with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	wg       sync.WaitGroup

	// Overridden in tests.
	requeue    func(ctx context.Context, queue string, job Job) error
	deadLetter func(ctx context.Context, queue string, job Job, reason string)
}

func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	p := &Pool{rdb: rdb, handlers: handlers}
	p.requeue = func(ctx context.Context, queue string, job Job) error {
		encoded, err := json.Marshal(job)
		if err != nil {
			return err
		}
		return rdb.LPush(ctx, queue, encoded).Err()
	}
	p.deadLetter = func(ctx context.Context, queue string, job Job, reason string) {
		SendToDLQ(ctx, rdb, queue, job, reason)
	}
	return p
}

// Start launches numWorkers goroutines. Each blocks on BRPOP, so idle workers
// cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

// Wait blocks until every worker has returned after ctx was cancelled.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueReportes).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Msg("worker: brpop failed")
					time.Sleep(time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.deadLetter(ctx, queue, Job{Type: "desconocido", Payload: json.RawMessage(raw)}, "invalid envelope: "+err.Error())
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		p.deadLetter(ctx, queue, job, "no handler for job type")
		return
	}

	job.Attempts++
	err := h.Process(ctx, job.Payload)
	if err == nil {
		return
	}
	if isPermanent(err) || job.Attempts >= MaxAttempts {
		p.deadLetter(ctx, queue, job, err.Error())
		return
	}
	log.Warn().Err(err).Str("type", job.Type).Int("attempt", job.Attempts).Msg("job failed, requeueing")
	if rerr := p.requeue(ctx, queue, job); rerr != nil {
		log.Error().Err(rerr).Str("queue", queue).Msg("requeue failed")
		p.deadLetter(ctx, queue, job, err.Error())
	}
}
