package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/pkg/utils"
)

type Service interface {
	OrderEntriesSum(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	EscrowBalance(ctx context.Context) (decimal.Decimal, error)
}

type AdminHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *AdminHandler {
	return &AdminHandler{ledgerService: ledgerService}
}

// Reconciliation godoc
//
//	@Summary		Reconcile an order's ledger
//	@Description	Sum the completed ledger entries of an order; a settled order must sum to zero.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string							true	"Order ID"
//	@Success		200	{object}	dto.ReconciliationResponseDTO	"Entries sum"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		403	{object}	utils.Response					"Admin role required"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/orders/{id}/reconciliation [get]
func (h *AdminHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	sum, err := h.ledgerService.OrderEntriesSum(r.Context(), orderID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReconciliationResponseDTO{
		OrderID:    orderID.String(),
		EntriesSum: sum.InexactFloat64(),
		Balanced:   sum.IsZero(),
	})
}

// EscrowBalance godoc
//
//	@Summary		Get the treasury escrow balance
//	@Description	Read the current total of funds held in platform custody.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]float64	"Escrow balance"
//	@Failure		401	{object}	utils.Response		"User not authorized"
//	@Failure		403	{object}	utils.Response		"Admin role required"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/escrow-balance [get]
func (h *AdminHandler) EscrowBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgerService.EscrowBalance(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]float64{"escrow_balance": balance.InexactFloat64()})
}
