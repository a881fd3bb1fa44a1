package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/internal/service/withdrawalservice"
	"github.com/gigmarket/escrowd/pkg/utils"
)

type OrderService interface {
	ConfirmPayment(ctx context.Context, transactionID string, success bool, externalTxID string) error
}

type WithdrawalService interface {
	Confirm(ctx context.Context, entryID uuid.UUID, success bool) error
}

// WebhookHandler receives the asynchronous callbacks from the payment
// provider and the payout gateway. Both endpoints are idempotent:
// replays of an already settled event return 200 with no side effects.
type WebhookHandler struct {
	orderService      OrderService
	withdrawalService WithdrawalService
	validate          *validator.Validate
}

func New(orderService OrderService, withdrawalService WithdrawalService) *WebhookHandler {
	return &WebhookHandler{
		orderService:      orderService,
		withdrawalService: withdrawalService,
		validate:          validator.New(),
	}
}

// Payment godoc
//
//	@Summary		Payment provider callback
//	@Description	Apply a charge result; a successful charge moves the order's funds into escrow.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentWebhookDTO	true	"Payment event"
//	@Success		200		{string}	string					"Accepted"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/webhooks/payment [post]
func (h *WebhookHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentWebhookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.orderService.ConfirmPayment(r.Context(), req.TransactionID, req.Success, req.ExternalTransactionID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "ok")
}

// Payout godoc
//
//	@Summary		Payout gateway callback
//	@Description	Apply a payout result; a failed payout returns the reserved funds to the user.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutWebhookDTO	true	"Payout event"
//	@Success		200		{string}	string					"Accepted"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		404		{object}	utils.Response			"Withdrawal not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/webhooks/payout [post]
func (h *WebhookHandler) Payout(w http.ResponseWriter, r *http.Request) {
	var req dto.PayoutWebhookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entryID, err := uuid.Parse(req.WithdrawalID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	if err := h.withdrawalService.Confirm(r.Context(), entryID, req.Status == "succeeded"); err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Withdrawal not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "ok")
}
