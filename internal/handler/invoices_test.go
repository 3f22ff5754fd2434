package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fatoora/internal/dto"
	"fatoora/internal/handler"
	"fatoora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubInvoiceService struct {
	issueErr   error
	rebuildErr error
}

func (s *stubInvoiceService) Issue(_ context.Context, _ dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	return &dto.InvoiceResponse{ID: uuid.NewString(), Number: 1}, nil
}

func (s *stubInvoiceService) Rebuild(_ context.Context, _ uuid.UUID) (*dto.InvoiceView, error) {
	if s.rebuildErr != nil {
		return nil, s.rebuildErr
	}
	return &dto.InvoiceView{Number: 1, Reconciled: true}, nil
}

func (s *stubInvoiceService) List(_ context.Context, _ dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	return &dto.InvoiceListResponse{}, nil
}

var _ service.InvoiceService = (*stubInvoiceService)(nil)

func newTestRouter(svc service.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewInvoicesHandler(svc)
	r := gin.New()
	r.POST("/v1/invoices", h.Issue)
	r.GET("/v1/invoices/:id", h.Get)
	r.GET("/v1/invoices", h.List)
	return r
}

const validIssueBody = `{
	"customer_id": "7d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b",
	"payment_method": "cash",
	"items": [{"product_id": "1d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b", "quantity": 1}]
}`

func TestIssueStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"insufficient stock", service.ErrInsufficientStock, http.StatusConflict},
		{"conflict after retries", service.ErrTransactionConflict, http.StatusConflict},
		{"customer missing", service.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubInvoiceService{issueErr: tc.svcErr})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader(validIssueBody))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestIssueValidationRejectsBadBody(t *testing.T) {
	r := newTestRouter(&stubInvoiceService{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing items", `{"customer_id":"7d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b","payment_method":"cash"}`, http.StatusUnprocessableEntity},
		{"bad payment method", `{"customer_id":"7d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b","payment_method":"crypto","items":[{"product_id":"1d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b","quantity":1}]}`, http.StatusUnprocessableEntity},
		{"zero quantity", `{"customer_id":"7d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b","payment_method":"cash","items":[{"product_id":"1d8f4b9e-3a2c-4f1d-9e6b-1c2d3e4f5a6b","quantity":0}]}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/invoices", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestGetInvoice(t *testing.T) {
	r := newTestRouter(&stubInvoiceService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	notFound := newTestRouter(&stubInvoiceService{rebuildErr: service.ErrNotFound})
	w = httptest.NewRecorder()
	notFound.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
