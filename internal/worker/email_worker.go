package worker

// email_worker.go
// Processes email jobs from QueueEmail.
// Sends rendered invoice PDFs to customers via SMTP, behind a circuit breaker
// so a downed relay fails fast instead of blocking the pool.

import (
	"context"
	"encoding/json"

	"fatoora/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	dispatcher *Dispatcher
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, dispatcher *Dispatcher) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, dispatcher: dispatcher}
}

// Process sends an email with the invoice PDF as attachment.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendInvoice(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.dispatcher.rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: invoice sent")
}
