package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paylane/payment-service/internal/cqrs"
	"github.com/paylane/payment-service/internal/models"
)

// ---- mock implementations ----

type mockTransactionCommander struct {
	createFn    func(cqrs.CreateTransactionCommand) (*models.Transaction, error)
	authorizeFn func(cqrs.AuthorizeTransactionCommand) (*models.Transaction, error)
	captureFn   func(cqrs.CaptureTransactionCommand) (*models.Transaction, error)
	refundFn    func(cqrs.RefundTransactionCommand) (*models.Transaction, error)
}

func (m *mockTransactionCommander) CreateTransaction(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) AuthorizeTransaction(cmd cqrs.AuthorizeTransactionCommand) (*models.Transaction, error) {
	if m.authorizeFn != nil {
		return m.authorizeFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) CaptureTransaction(cmd cqrs.CaptureTransactionCommand) (*models.Transaction, error) {
	if m.captureFn != nil {
		return m.captureFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) RefundTransaction(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
	if m.refundFn != nil {
		return m.refundFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactionQuerier struct {
	getFn func(cqrs.GetTransactionQuery) (*models.TransactionView, error)
}

func (m *mockTransactionQuerier) GetTransaction(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTxTestRouter(cmds TransactionCommander, qrys TransactionQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransactionHandler(cmds, qrys)
	v1 := r.Group("/v1/transactions")
	v1.POST("", h.CreateTransaction)
	v1.GET("/:transactionId", h.GetTransaction)
	v1.POST("/:transactionId/authorize", h.AuthorizeTransaction)
	v1.POST("/:transactionId/capture", h.CaptureTransaction)
	v1.POST("/:transactionId/refund", h.RefundTransaction)
	return r
}

func txDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var txTestTransaction = &models.Transaction{
	ID: "txn-001", OwnerID: "u1",
	Amount: 100.00, RefundedAmount: 0,
	Status:    models.StatusCreated,
	CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

func capturedTransaction(refunded float64, status models.TransactionStatus) *models.Transaction {
	return &models.Transaction{
		ID: "txn-001", OwnerID: "u1",
		Amount: 100.00, RefundedAmount: refunded,
		Status:    status,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

// ---- tests ----

func TestCreateTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(cqrs.CreateTransactionCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name:           "success",
			body:           map[string]interface{}{"ownerId": "u1", "amount": 100.0},
			createFn:       func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) { return txTestTransaction, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing owner",
			body:           map[string]interface{}{"amount": 100.0},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - zero amount",
			body:           map[string]interface{}{"ownerId": "u1", "amount": 0},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - negative amount",
			body:           map[string]interface{}{"ownerId": "u1", "amount": -5},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - service rejects argument",
			body: map[string]interface{}{"ownerId": " ", "amount": 50.0},
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return nil, &models.InvalidArgumentError{Reason: "ownerId must not be empty"}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{createFn: tt.createFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthorizeTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		authorizeFn    func(cqrs.AuthorizeTransactionCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			authorizeFn: func(cmd cqrs.AuthorizeTransactionCommand) (*models.Transaction, error) {
				return capturedTransaction(0, models.StatusAuthorized), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			authorizeFn: func(cmd cqrs.AuthorizeTransactionCommand) (*models.Transaction, error) {
				return nil, &models.TransactionNotFoundError{TransactionID: cmd.TransactionID}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "conflict - already authorized",
			authorizeFn: func(cmd cqrs.AuthorizeTransactionCommand) (*models.Transaction, error) {
				return nil, &models.InvalidStateError{TransactionID: cmd.TransactionID, Action: "authorize", Status: models.StatusAuthorized}
			},
			expectedStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{authorizeFn: tt.authorizeFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions/txn-001/authorize", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCaptureTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		captureFn      func(cqrs.CaptureTransactionCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success",
			captureFn: func(cmd cqrs.CaptureTransactionCommand) (*models.Transaction, error) {
				return capturedTransaction(0, models.StatusCaptured), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "conflict - not authorized yet",
			captureFn: func(cmd cqrs.CaptureTransactionCommand) (*models.Transaction, error) {
				return nil, &models.InvalidStateError{TransactionID: cmd.TransactionID, Action: "capture", Status: models.StatusCreated}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "not found",
			captureFn: func(cmd cqrs.CaptureTransactionCommand) (*models.Transaction, error) {
				return nil, &models.TransactionNotFoundError{TransactionID: cmd.TransactionID}
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{captureFn: tt.captureFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions/txn-001/capture", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRefundTransactionHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		refundFn       func(cqrs.RefundTransactionCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success - partial refund",
			body: map[string]interface{}{"amount": 30.0},
			refundFn: func(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
				return capturedTransaction(30, models.StatusCaptured), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unprocessable - refund exceeds refundable amount",
			body: map[string]interface{}{"amount": 150.0},
			refundFn: func(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
				return nil, &models.InvalidRefundAmountError{TransactionID: cmd.TransactionID, Requested: 150, Available: 100}
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "conflict - transaction not captured",
			body: map[string]interface{}{"amount": 30.0},
			refundFn: func(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
				return nil, &models.InvalidStateError{TransactionID: cmd.TransactionID, Action: "refund", Status: models.StatusAuthorized}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - missing amount",
			body:           map[string]interface{}{},
			refundFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - negative amount",
			body:           map[string]interface{}{"amount": -10.0},
			refundFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found",
			body: map[string]interface{}{"amount": 30.0},
			refundFn: func(cmd cqrs.RefundTransactionCommand) (*models.Transaction, error) {
				return nil, &models.TransactionNotFoundError{TransactionID: cmd.TransactionID}
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{refundFn: tt.refundFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{})
			w := txDoRequest(router, http.MethodPost, "/v1/transactions/txn-001/refund", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTransactionHandler(t *testing.T) {
	view := models.NewTransactionView(capturedTransaction(30, models.StatusCaptured))

	tests := []struct {
		name           string
		getFn          func(cqrs.GetTransactionQuery) (*models.TransactionView, error)
		expectedStatus int
		checkBody      bool
	}{
		{
			name:           "success",
			getFn:          func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) { return view, nil },
			expectedStatus: http.StatusOK,
			checkBody:      true,
		},
		{
			name: "not found",
			getFn: func(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
				return nil, &models.TransactionNotFoundError{TransactionID: q.TransactionID}
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{getFn: tt.getFn})
			w := txDoRequest(router, http.MethodGet, "/v1/transactions/txn-001", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.checkBody {
				var got models.TransactionView
				if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if got.RefundableAmount != 70 {
					t.Errorf("expected refundableAmount 70 in response, got %.2f", got.RefundableAmount)
				}
			}
		})
	}
}
