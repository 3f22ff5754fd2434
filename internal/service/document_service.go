package service

import (
	"context"
	"fmt"
	"time"

	"fatoora/internal/dto"
	"fatoora/internal/repository"
	"fatoora/internal/worker"

	"github.com/google/uuid"
)

type DocumentService interface {
	// Status reports the rendering state of an invoice's PDF.
	Status(ctx context.Context, invoiceID uuid.UUID) (*dto.DocumentResponse, error)
	// PDFPath returns the stored relative path of a rendered document.
	PDFPath(ctx context.Context, invoiceID uuid.UUID) (string, error)
	// Requeue pushes a fresh render job for an invoice, e.g. after fixing the
	// trader profile or an SMTP outage.
	Requeue(ctx context.Context, invoiceID uuid.UUID) error
}

type documentService struct {
	documents  repository.DocumentRepository
	invoices   repository.InvoiceRepository
	dispatcher *worker.Dispatcher
}

func NewDocumentService(
	documents repository.DocumentRepository,
	invoices repository.InvoiceRepository,
	dispatcher *worker.Dispatcher,
) DocumentService {
	return &documentService{documents: documents, invoices: invoices, dispatcher: dispatcher}
}

func (s *documentService) Status(ctx context.Context, invoiceID uuid.UUID) (*dto.DocumentResponse, error) {
	d, err := s.documents.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: document for invoice %s", ErrNotFound, invoiceID)
	}
	return &dto.DocumentResponse{
		InvoiceID:  d.InvoiceID.String(),
		Status:     d.Status,
		PDFPath:    d.PDFPath,
		RetryCount: d.RetryCount,
		LastError:  d.LastError,
		UpdatedAt:  d.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *documentService) PDFPath(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	d, err := s.documents.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return "", fmt.Errorf("%w: document for invoice %s", ErrNotFound, invoiceID)
	}
	if d.PDFPath == nil {
		return "", fmt.Errorf("%w: invoice %s has no rendered document", ErrNotFound, invoiceID)
	}
	return *d.PDFPath, nil
}

func (s *documentService) Requeue(ctx context.Context, invoiceID uuid.UUID) error {
	if _, err := s.invoices.FindByID(ctx, invoiceID); err != nil {
		return fmt.Errorf("%w: invoice %s", ErrNotFound, invoiceID)
	}
	var notify *string
	if d, err := s.documents.FindByInvoiceID(ctx, invoiceID); err == nil {
		notify = d.NotifyEmail
	}
	return s.dispatcher.EnqueueDocument(ctx, worker.DocumentJobPayload{
		InvoiceID:   invoiceID.String(),
		NotifyEmail: notify,
	})
}
