package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Skryldev/grayscaler/config"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// Processor is the central orchestrator.  It is safe for concurrent use.
type Processor struct {
	cfg     config.Config
	runner  PipelineRunner
	logger  Logger
	metrics MetricsCollector

	// Worker pool.
	jobQueue  chan Job
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	shutdown  chan struct{}
	// submitMu orders Submit against Stop: once stopped is set under the
	// write lock, nothing else reaches jobQueue.
	submitMu sync.RWMutex
	stopped  bool

	// Atomic counters for lightweight internal metrics.
	processedCount int64
	errorCount     int64
}

// New creates a Processor that runs every conversion through runner.  Call
// Start() before submitting jobs; call Stop() when done.
func New(cfg config.Config, runner PipelineRunner) *Processor {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Processor{
		cfg:      cfg,
		runner:   runner,
		jobQueue: make(chan Job, queueSize),
		shutdown: make(chan struct{}),
	}
}

// SetLogger attaches a structured logger.
func (p *Processor) SetLogger(l Logger) { p.logger = l }

// SetMetrics attaches a metrics collector.
func (p *Processor) SetMetrics(m MetricsCollector) { p.metrics = m }

// Config returns the configuration the processor was built with.
func (p *Processor) Config() config.Config { return p.cfg }

// Start launches the worker pool.  It is idempotent.
func (p *Processor) Start() {
	p.startOnce.Do(func() {
		workerCount := p.cfg.WorkerCount
		if workerCount <= 0 {
			workerCount = runtime.NumCPU()
		}
		for i := 0; i < workerCount; i++ {
			p.wg.Add(1)
			go p.worker()
		}
	})
}

// Stop shuts down all workers after their current job.  Every job still
// queued is answered on its ResultCh with an ErrStopped result, so each
// accepted job gets exactly one result.  It is idempotent.
func (p *Processor) Stop() {
	p.stopOnce.Do(func() {
		p.submitMu.Lock()
		p.stopped = true
		p.submitMu.Unlock()

		close(p.shutdown)
		p.wg.Wait()
		p.rejectQueued()
	})
	p.wg.Wait()
}

func (p *Processor) rejectQueued() {
	for {
		select {
		case job := <-p.jobQueue:
			atomic.AddInt64(&p.errorCount, 1)
			if job.ResultCh != nil {
				job.ResultCh <- JobResult{
					JobID: job.ID,
					Err:   apperrors.New(apperrors.KindPipeline, "stop", apperrors.ErrStopped),
				}
			}
		default:
			return
		}
	}
}

// Process is the primary synchronous API.  It converts one input string and
// returns the dimensions of the decoded image together with the output data
// URI.  Any step failure is returned unchanged and nothing is produced.
func (p *Processor) Process(ctx context.Context, input string) (*ConversionResult, error) {
	start := time.Now()

	if p.cfg.MaxInputBytes > 0 && int64(len(input)) > p.cfg.MaxInputBytes {
		return nil, p.fail(apperrors.New(apperrors.KindInput, "process", apperrors.ErrInputTooLarge))
	}

	out, timings, err := p.runner.Run(ctx, &ImageData{Input: input})
	if err != nil {
		return nil, p.fail(err)
	}

	atomic.AddInt64(&p.processedCount, 1)
	if p.metrics != nil {
		p.metrics.RecordThroughput(int64(len(input)))
	}

	res := &ConversionResult{
		Mime:           out.OutputFormat.Mime(),
		Width:          uint32(out.Meta.Width),
		Height:         uint32(out.Meta.Height),
		DataURI:        out.DataURI,
		ProcessingTime: time.Since(start),
		StepTimings:    timings,
	}
	if p.logger != nil {
		p.logger.Debug("convert.done",
			"input_format", out.Format,
			"mime", res.Mime,
			"width", res.Width,
			"height", res.Height,
			"duration_ms", res.ProcessingTime.Milliseconds(),
		)
	}
	return res, nil
}

// Submit enqueues an async job.  Returns ErrWorkerPoolFull if the queue is
// full and ErrStopped after Stop.
func (p *Processor) Submit(job Job) (string, error) {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()
	if p.stopped {
		return "", apperrors.New(apperrors.KindPipeline, "submit", apperrors.ErrStopped)
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Ctx == nil {
		job.Ctx = context.Background()
	}
	select {
	case p.jobQueue <- job:
		return job.ID, nil
	default:
		return "", apperrors.New(apperrors.KindPipeline, "submit", apperrors.ErrWorkerPoolFull)
	}
}

// Batch converts multiple inputs concurrently (fan-out / fan-in).  Results and
// errors are index-aligned with inputs.
func (p *Processor) Batch(ctx context.Context, inputs []string) ([]*ConversionResult, []error) {
	results := make([]*ConversionResult, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup

	for i, in := range inputs {
		wg.Add(1)
		go func(idx int, s string) {
			defer wg.Done()
			results[idx], errs[idx] = p.Process(ctx, s)
		}(i, in)
	}
	wg.Wait()
	return results, errs
}

// ── worker pool internals ──────────────────────────────────────────────────────

func (p *Processor) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.shutdown:
			return
		case job := <-p.jobQueue:
			p.processJob(job)
		}
	}
}

func (p *Processor) processJob(job Job) {
	ctx := job.Ctx
	if p.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.JobTimeout)
		defer cancel()
	}

	result, err := p.Process(ctx, job.Input)
	if job.ResultCh != nil {
		job.ResultCh <- JobResult{JobID: job.ID, Result: result, Err: err}
	}
}

func (p *Processor) fail(err error) error {
	atomic.AddInt64(&p.errorCount, 1)
	if p.logger != nil {
		p.logger.Warn("convert.failed", "kind", string(apperrors.KindOf(err)), "error", err.Error())
	}
	return err
}

// ProcessedCount returns the total number of successful conversions.
func (p *Processor) ProcessedCount() int64 { return atomic.LoadInt64(&p.processedCount) }

// ErrorCount returns the total number of failed conversions.
func (p *Processor) ErrorCount() int64 { return atomic.LoadInt64(&p.errorCount) }
