package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/streadway/amqp"
)

var errUnknownKind = errors.New("unknown job kind")

// retry retries fn up to attempts times with linear back-off, stopping early
// when ctx is done.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		wait := time.Duration(500*(i+1)) * time.Millisecond
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// handle runs one job and returns the result payload published with the
// completed status.
func (workerConfig *WorkerConfig) handle(ctx context.Context, job Job) (json.RawMessage, string, error) {
	switch job.Kind {
	case JobInsights:
		return workerConfig.handleInsights(ctx, job)
	case JobAssessment:
		return workerConfig.handleAssessment(ctx, job)
	case JobQuiz:
		return workerConfig.handleQuiz(ctx, job)
	case JobResumeImport:
		return workerConfig.handleResumeImport(ctx, job)
	case JobResumeImprove:
		return workerConfig.handleResumeImprove(ctx, job)
	default:
		return nil, "", fmt.Errorf("%w: %q", errUnknownKind, job.Kind)
	}
}

// setStatus records a status change. The write outlives ctx so that a
// shutdown mid-job still leaves the final status behind.
func (workerConfig *WorkerConfig) setStatus(ctx context.Context, job Job, status, message string, result json.RawMessage) {
	logger := workerConfig.Logger.With("job_id", job.ID, "kind", job.Kind)
	ctx = context.WithoutCancel(ctx)

	_, err := retry(ctx, 3, func() (any, error) {
		return nil, workerConfig.DB.UpdateJobStatus(ctx, database.UpdateJobStatusParams{
			ID:      job.ID,
			Kind:    job.Kind,
			Status:  status,
			Message: message,
		})
	})
	if err != nil {
		logger.Error("failed to update job status", "status", status, "error", err)
	}

	update := JobUpdate{
		JobID:     job.ID,
		Kind:      job.Kind,
		Status:    status,
		Message:   message,
		Result:    result,
		Timestamp: workerConfig.now(),
	}
	if err := workerConfig.Publisher.PublishJobUpdate(job.ID.String(), update); err != nil {
		logger.Warn("failed to publish update", "error", err)
	}
}

// process decodes and runs one message body and reports whether the
// message should go back on the queue. Only jobs interrupted by ctx are
// requeued. A body that is not a job is reported as failed under whatever id
// could be read from it.
func (workerConfig *WorkerConfig) process(ctx context.Context, workerID int, body []byte) (requeue bool) {
	if ctx.Err() != nil {
		return true
	}
	job := Job{}
	if err := json.Unmarshal(body, &job); err != nil {
		workerConfig.Logger.Error("error unmarshalling message body", "error", err)
		if job.ID != uuid.Nil {
			workerConfig.setStatus(ctx, job, StatusFailed, "invalid job message", nil)
		}
		return false
	}

	logger := workerConfig.Logger.With("worker", workerID, "job_id", job.ID, "kind", job.Kind)
	logger.Info("processing job")
	workerConfig.setStatus(ctx, job, StatusProcessing, job.Kind+" started", nil)

	result, message, err := workerConfig.handle(ctx, job)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("job interrupted, requeueing", "error", err)
			workerConfig.setStatus(ctx, job, StatusQueued, job.Kind+" interrupted", nil)
			return true
		}
		logger.Error("job failed", "error", err)
		workerConfig.setStatus(ctx, job, StatusFailed, job.Kind+" failed", nil)
		return false
	}

	workerConfig.setStatus(ctx, job, StatusCompleted, message, result)
	logger.Info("job completed", "message", message)
	return false
}

func worker(ctx context.Context, id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := workerConfig.Logger.With("worker", id)

	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		logger.Error("error dialling rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("error connecting to rabbitmq channel", "error", err)
		return
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("failed to set qos", "error", err)
		return
	}

	msgs, err := ch.Consume(
		jobsQueue, // queue name
		"",        // consumer tag
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		logger.Error("error consuming rabbitmq message", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			if workerConfig.process(ctx, id, msg.Body) {
				if err := msg.Nack(false, true); err != nil {
					logger.Warn("failed to requeue message", "error", err)
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				logger.Warn("failed to ack message", "error", err)
			}
		}
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		workerConfig.Logger.Info("worker started", "worker", i+1)
		go worker(ctx, i+1, workerConfig, &wg)
	}
	wg.Wait()
}

func (workerConfig *WorkerConfig) now() time.Time {
	if workerConfig.Now != nil {
		return workerConfig.Now()
	}
	return time.Now()
}
