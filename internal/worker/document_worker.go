package worker

// document_worker.go
// Processes PDF rendering jobs from QueueDocument.
// Rebuilds the invoice breakdown from its stored items, renders the printable
// document, and optionally chains an email job with the attachment.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"fatoora/internal/dto"
	"fatoora/internal/infra"
	"fatoora/internal/model"
	"fatoora/internal/numword"
	"fatoora/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxDocumentRetries caps rendering attempts before a document is parked in
// the error state and its job moved to the DLQ.
const MaxDocumentRetries = 5

// InvoiceViewer reconstructs an invoice's full breakdown from stored items.
// Declared here (not in service) so the worker package never imports service.
type InvoiceViewer interface {
	Rebuild(ctx context.Context, id uuid.UUID) (*dto.InvoiceView, error)
}

// DocumentWorker renders invoice PDFs and tracks their state in the
// invoice_documents table.
type DocumentWorker struct {
	viewer         InvoiceViewer
	documents      repository.DocumentRepository
	trader         repository.TraderRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	wordsLocale    string
}

func NewDocumentWorker(
	viewer InvoiceViewer,
	documents repository.DocumentRepository,
	trader repository.TraderRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	wordsLocale string,
) *DocumentWorker {
	return &DocumentWorker{
		viewer:         viewer,
		documents:      documents,
		trader:         trader,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		wordsLocale:    wordsLocale,
	}
}

// Process handles a single document job:
//  1. Parse DocumentJobPayload from the job envelope
//  2. Find or create the InvoiceDocument tracking row
//  3. Rebuild the invoice view and render the PDF
//  4. On failure: bump retry_count, schedule next_retry_at, DLQ past the cap
//  5. On success: mark rendered and optionally enqueue the email job
func (w *DocumentWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload DocumentJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("document_worker: invalid payload")
		return
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("document_worker: invalid invoice_id")
		return
	}

	doc, err := w.documents.FindByInvoiceID(ctx, invoiceID)
	switch {
	case err == nil:
		if payload.NotifyEmail != nil {
			doc.NotifyEmail = payload.NotifyEmail
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = &model.InvoiceDocument{
			InvoiceID:   invoiceID,
			Status:      model.DocumentPending,
			NotifyEmail: payload.NotifyEmail,
		}
		if err := w.documents.Create(ctx, doc); err != nil {
			log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: failed to create document row")
			return
		}
	default:
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: document lookup failed")
		return
	}

	view, fileName, renderErr := w.render(ctx, invoiceID)
	if renderErr != nil {
		w.recordFailure(ctx, doc, raw, renderErr)
		return
	}

	doc.Status = model.DocumentRendered
	doc.PDFPath = &fileName
	doc.NextRetryAt = nil
	doc.LastError = nil
	if err := w.documents.Update(ctx, doc); err != nil {
		log.Error().Err(err).Str("invoice_id", payload.InvoiceID).Msg("document_worker: failed to update document row")
		return
	}
	log.Info().Str("pdf", fileName).Str("invoice_id", payload.InvoiceID).Msg("document_worker: PDF rendered")

	if doc.NotifyEmail != nil && *doc.NotifyEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *doc.NotifyEmail,
			Subject: fmt.Sprintf("Invoice No %d", view.Number),
			Body:    fmt.Sprintf("Please find invoice No %d attached.\nTotal: %s", view.Number, view.Total.StringFixed(2)),
			PDFPath: filepath.Join(w.pdfStoragePath, fileName),
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *doc.NotifyEmail).Msg("document_worker: failed to enqueue email")
		}
	}
}

func (w *DocumentWorker) render(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceView, string, error) {
	view, err := w.viewer.Rebuild(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("rebuild invoice: %w", err)
	}
	trader, err := w.trader.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("trader profile not configured: %w", err)
	}
	words := numword.Amount(view.Total, w.wordsLocale)
	fileName, err := infra.GenerateInvoicePDF(view, trader, words, w.pdfStoragePath)
	if err != nil {
		return nil, "", err
	}
	return view, fileName, nil
}

func (w *DocumentWorker) recordFailure(ctx context.Context, doc *model.InvoiceDocument, raw json.RawMessage, cause error) {
	doc.RetryCount++
	errMsg := cause.Error()
	doc.LastError = &errMsg

	if doc.RetryCount >= MaxDocumentRetries {
		doc.Status = model.DocumentError
		doc.NextRetryAt = nil
		log.Error().
			Str("invoice_id", doc.InvoiceID.String()).
			Int("retries", doc.RetryCount).
			Err(cause).
			Msg("document_worker: max retries exceeded, moving to error/DLQ")
		SendToDLQ(ctx, w.dispatcher.rdb, QueueDocument, "document", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxDocumentRetries, errMsg),
			doc.RetryCount)
	} else {
		doc.Status = model.DocumentPending
		next := time.Now().Add(computeRetryBackoff(doc.RetryCount))
		doc.NextRetryAt = &next
		log.Warn().
			Str("invoice_id", doc.InvoiceID.String()).
			Int("retry_count", doc.RetryCount).
			Time("next_retry_at", next).
			Err(cause).
			Msg("document_worker: render failed, scheduled retry")
	}

	if err := w.documents.Update(ctx, doc); err != nil {
		log.Error().Err(err).Str("invoice_id", doc.InvoiceID.String()).Msg("document_worker: failed to persist failure state")
	}
}

// computeRetryBackoff: 1m, 2m, 4m, 8m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	d := time.Minute << uint(retryCount-1)
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return d
}
