package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues render jobs for invoice
// documents stuck in status='pending' with a next_retry_at in the past. The
// document worker itself owns the retry accounting and the DLQ cutoff.

import (
	"context"
	"time"

	"fatoora/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues due pending documents. It respects the context for graceful
// shutdown.
func StartRetryCron(ctx context.Context, documents repository.DocumentRepository, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, documents, dispatcher)
			}
		}
	}()
}

func processRetries(ctx context.Context, documents repository.DocumentRepository, dispatcher *Dispatcher) {
	docs, err := documents.ListPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(docs) == 0 {
		return
	}

	log.Info().Int("count", len(docs)).Msg("retry_cron: re-enqueueing pending documents")

	for i := range docs {
		doc := &docs[i]

		// Clear next_retry_at so the same row is not re-enqueued on the next
		// tick while the job is still sitting in the queue.
		doc.NextRetryAt = nil
		if err := documents.Update(ctx, doc); err != nil {
			log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).Msg("retry_cron: failed to claim document")
			continue
		}

		payload := DocumentJobPayload{InvoiceID: doc.InvoiceID.String(), NotifyEmail: doc.NotifyEmail}
		if err := dispatcher.EnqueueDocument(ctx, payload); err != nil {
			log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).Msg("retry_cron: failed to enqueue render job")
			continue
		}
		log.Info().
			Str("invoice_id", doc.InvoiceID.String()).
			Int("retry_count", doc.RetryCount).
			Msg("retry_cron: render job re-enqueued")
	}
}
