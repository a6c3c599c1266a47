// Package transactiondelivery manages delivery layer of balance mutations.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/internal/middleware"
	"github.com/avelhart/duobank/pkg/errorspkg"
	"github.com/avelhart/duobank/pkg/web"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, caller domain.AuthUser, accountType string, accountID uuid.UUID, amount int64) (domain.Account, error)
	Withdraw(ctx context.Context, caller domain.AuthUser, accountType string, accountID uuid.UUID, amount int64) (domain.Account, error)
	Transfer(ctx context.Context, caller domain.AuthUser, arg domain.TransferParams) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type transactionRequest struct {
	Type      string `json:"type" binding:"required,accounttype"`
	AccountID string `json:"account_id" binding:"required,uuid"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// Deposit handles http request to deposit money into the caller's account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authUser := gctx.MustGet(middleware.AuthUserKey).(domain.AuthUser)

	account, err := h.service.Deposit(ctx, authUser, req.Type, uuid.MustParse(req.AccountID), req.Amount)
	if err != nil {
		handleTransactionError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

// Withdraw handles http request to withdraw money from the caller's account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authUser := gctx.MustGet(middleware.AuthUserKey).(domain.AuthUser)

	account, err := h.service.Withdraw(ctx, authUser, req.Type, uuid.MustParse(req.AccountID), req.Amount)
	if err != nil {
		handleTransactionError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type transferSenderRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Type      string `json:"type" binding:"required,accounttype"`
}

type transferReceiverRequest struct {
	AccountNumber int64  `json:"account_number" binding:"required"`
	Type          string `json:"type" binding:"required,accounttype"`
}

type transferRequest struct {
	Sender   transferSenderRequest   `json:"sender" binding:"required"`
	Receiver transferReceiverRequest `json:"receiver" binding:"required"`
	Amount   int64                   `json:"amount" binding:"required,gt=0"`
}

// Transfer handles http request to transfer money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authUser := gctx.MustGet(middleware.AuthUserKey).(domain.AuthUser)

	arg := domain.TransferParams{
		Sender: domain.TransferSender{
			AccountID: uuid.MustParse(req.Sender.AccountID),
			Type:      domain.AccountType(req.Sender.Type),
		},
		Receiver: domain.TransferReceiver{
			AccountNumber: req.Receiver.AccountNumber,
			Type:          domain.AccountType(req.Receiver.Type),
		},
		Amount: req.Amount,
	}

	if err := h.service.Transfer(ctx, authUser, arg); err != nil {
		handleTransactionError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: "transfer completed"})
}

func handleTransactionError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAccountType, domain.ErrInvalidAmount, domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrAccountAccessDenied:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case domain.ErrSelfTransfer:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case domain.ErrUpdateConflict:
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
