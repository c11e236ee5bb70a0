package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylane/payment-service/internal/cqrs"
	"github.com/paylane/payment-service/internal/middleware"
	"github.com/paylane/payment-service/internal/models"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(cqrs.CreateTransactionCommand) (*models.Transaction, error)
	AuthorizeTransaction(cqrs.AuthorizeTransactionCommand) (*models.Transaction, error)
	CaptureTransaction(cqrs.CaptureTransactionCommand) (*models.Transaction, error)
	RefundTransaction(cqrs.RefundTransactionCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(cqrs.GetTransactionQuery) (*models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

type CreateTransactionRequest struct {
	OwnerID string  `json:"ownerId" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

type RefundTransactionRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.CreateTransaction(cqrs.CreateTransactionCommand{
		OwnerID: req.OwnerID,
		Amount:  req.Amount,
	})
	if err != nil {
		respondWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewTransactionView(transaction))
}

func (h *TransactionHandler) AuthorizeTransaction(c *gin.Context) {
	transaction, err := h.commands.AuthorizeTransaction(cqrs.AuthorizeTransactionCommand{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTransactionView(transaction))
}

func (h *TransactionHandler) CaptureTransaction(c *gin.Context) {
	transaction, err := h.commands.CaptureTransaction(cqrs.CaptureTransactionCommand{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTransactionView(transaction))
}

func (h *TransactionHandler) RefundTransaction(c *gin.Context) {
	var req RefundTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.RefundTransaction(cqrs.RefundTransactionCommand{
		TransactionID: c.Param("transactionId"),
		Amount:        req.Amount,
	})
	if err != nil {
		respondWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTransactionView(transaction))
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	view, err := h.queries.GetTransaction(cqrs.GetTransactionQuery{
		TransactionID: c.Param("transactionId"),
	})
	if err != nil {
		respondWithCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// respondWithCommandError maps the service error taxonomy onto HTTP status
// codes. The error messages already carry the diagnostic detail (attempted
// action and current status, or requested and available amounts).
func respondWithCommandError(c *gin.Context, err error) {
	var (
		invalidArgument *models.InvalidArgumentError
		notFound        *models.TransactionNotFoundError
		invalidState    *models.InvalidStateError
		invalidRefund   *models.InvalidRefundAmountError
	)
	switch {
	case errors.As(err, &invalidArgument):
		middleware.RespondWithError(c, http.StatusBadRequest, invalidArgument.Error())
	case errors.As(err, &notFound):
		middleware.RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalidState):
		middleware.RespondWithError(c, http.StatusConflict, invalidState.Error())
	case errors.As(err, &invalidRefund):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, invalidRefund.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
