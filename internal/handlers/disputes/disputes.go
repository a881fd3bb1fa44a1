package disputes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/internal/service/escrowservice"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"github.com/gigmarket/escrowd/pkg/auth"
	"github.com/gigmarket/escrowd/pkg/utils"
)

type Service interface {
	OpenDispute(ctx context.Context, userID int, orderID uuid.UUID, reason string) (*domain.Dispute, error)
	ResolveDispute(ctx context.Context, disputeID uuid.UUID, sellerAmount, buyerRefund decimal.Decimal) (*domain.Dispute, error)
}

type DisputeHandler struct {
	orderService Service
	validate     *validator.Validate
}

func New(orderService Service) *DisputeHandler {
	return &DisputeHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// Open godoc
//
//	@Summary		Open a dispute
//	@Description	Open a dispute on a paid order, freezing its lifecycle until an operator resolves it.
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Order ID"
//	@Param			request	body		dto.OpenDisputeRequestDTO	true	"Dispute payload"
//	@Success		201		{object}	dto.DisputeResponseDTO	"Opened dispute"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Not a participant"
//	@Failure		404		{object}	utils.Response			"Order not found"
//	@Failure		409		{object}	utils.Response			"Dispute already open or order not disputable"
//	@Router			/api/orders/{id}/dispute [post]
func (h *DisputeHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.OpenDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	dispute, err := h.orderService.OpenDispute(r.Context(), userID, orderID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, orderservice.ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, orderservice.ErrDisputeAlreadyOpen),
			errors.Is(err, orderservice.ErrOrderNotPaid),
			errors.Is(err, orderservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDisputeDTO(dispute))
}

// Resolve godoc
//
//	@Summary		Resolve a dispute
//	@Description	Operator splits the escrowed funds between seller and buyer and closes the dispute.
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Dispute ID"
//	@Param			request	body		dto.ResolveDisputeRequestDTO	true	"Resolution payload"
//	@Success		200		{object}	dto.DisputeResponseDTO		"Resolved dispute"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Admin role required"
//	@Failure		404		{object}	utils.Response				"Dispute not found"
//	@Failure		409		{object}	utils.Response				"Dispute not open"
//	@Failure		422		{object}	utils.Response				"Split amounts invalid"
//	@Router			/api/disputes/{id}/resolve [post]
func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	disputeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid dispute id")
		return
	}

	var req dto.ResolveDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	dispute, err := h.orderService.ResolveDispute(r.Context(), disputeID,
		decimal.NewFromFloat(req.SellerAmount), decimal.NewFromFloat(req.BuyerRefund))
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrDisputeNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Dispute not found")
		case errors.Is(err, orderservice.ErrDisputeNotOpen),
			errors.Is(err, orderservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, escrowservice.ErrSplitMismatch),
			errors.Is(err, escrowservice.ErrEscrowInsufficient):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDisputeDTO(dispute))
}

func toDisputeDTO(d *domain.Dispute) dto.DisputeResponseDTO {
	resp := dto.DisputeResponseDTO{
		ID:          d.ID.String(),
		OrderID:     d.OrderID.String(),
		InitiatorID: d.InitiatorID,
		Reason:      d.Reason,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		ResolvedAt:  d.ResolvedAt,
	}
	if d.SellerAmount != nil {
		v := d.SellerAmount.InexactFloat64()
		resp.SellerAmount = &v
	}
	if d.BuyerRefund != nil {
		v := d.BuyerRefund.InexactFloat64()
		resp.BuyerRefund = &v
	}
	return resp
}
