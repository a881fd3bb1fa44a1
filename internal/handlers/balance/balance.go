package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/internal/service/withdrawalservice"
	"github.com/gigmarket/escrowd/pkg/auth"
	"github.com/gigmarket/escrowd/pkg/utils"
	"github.com/gigmarket/escrowd/pkg/validate"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (*domain.UserBalance, error)
	Request(ctx context.Context, userID int, amount decimal.Decimal) (*domain.LedgerEntry, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
	AddDestination(ctx context.Context, userID int, provider, account string, isDefault bool) (*domain.PayoutDestination, error)
	GetDestinations(ctx context.Context, userID int) ([]domain.PayoutDestination, error)
}

type BalanceHandler struct {
	withdrawalService Service
	validate          *validator.Validate
}

func New(withdrawalService Service) *BalanceHandler {
	return &BalanceHandler{
		withdrawalService: withdrawalService,
		validate:          validator.New(),
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve available and reserved funds plus lifetime earning counters for the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.withdrawalService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Available:             balance.AvailableBalance.InexactFloat64(),
		Reserved:              balance.ReservedBalance.InexactFloat64(),
		EarningsToDate:        balance.EarningsToDate.InexactFloat64(),
		CancelledOrdersCredit: balance.CancelledOrdersCredit.InexactFloat64(),
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Reserve funds from the available balance and queue a payout to the user's default destination.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		202		{object}	dto.WithdrawResponseDTO	"Withdrawal queued"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		409		{object}	utils.Response			"Withdrawal already pending"
//	@Failure		422		{object}	utils.Response			"Amount below minimum or no payout destination"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.withdrawalService.Request(r.Context(), userID, decimal.NewFromFloat(req.Sum))
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, withdrawalservice.ErrWithdrawalAlreadyPending):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, withdrawalservice.ErrBelowMinimum),
			errors.Is(err, withdrawalservice.ErrNoPayoutDestination):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.WithdrawResponseDTO{
		ID:     entry.ID.String(),
		Sum:    entry.Amount.Abs().InexactFloat64(),
		Status: entry.Status,
	})
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Description	Get the withdrawal history for the authenticated user, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetWithdrawalsResponseDTO	"Withdrawals history"
//	@Success		204	{object}	utils.Response					"Withdrawals not found"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *BalanceHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.GetWithdrawalsResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.GetWithdrawalsResponseDTO{
			ID:          wd.ID.String(),
			Sum:         wd.Amount.Abs().InexactFloat64(),
			Status:      wd.Status,
			ProcessedAt: wd.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddDestination godoc
//
//	@Summary		Add a payout destination
//	@Description	Register a payout account for withdrawals; the account number must pass a Luhn check.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AddDestinationRequestDTO	true	"Destination payload"
//	@Success		201		{object}	dto.DestinationResponseDTO		"Created destination"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		422		{object}	utils.Response					"Invalid account number"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/payout-destinations [post]
func (h *BalanceHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.AddDestinationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validate.IsLuhn(req.Account) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid account number")
		return
	}

	destination, err := h.withdrawalService.AddDestination(r.Context(), userID, req.Provider, req.Account, req.IsDefault)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDestinationDTO(destination))
}

// GetDestinations godoc
//
//	@Summary		List payout destinations
//	@Description	List the payout accounts registered by the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.DestinationResponseDTO	"Destinations"
//	@Success		204	{object}	utils.Response				"Destinations not found"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/payout-destinations [get]
func (h *BalanceHandler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	destinations, err := h.withdrawalService.GetDestinations(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(destinations) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Destinations not found")
		return
	}

	response := make([]dto.DestinationResponseDTO, len(destinations))
	for i := range destinations {
		response[i] = toDestinationDTO(&destinations[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toDestinationDTO(d *domain.PayoutDestination) dto.DestinationResponseDTO {
	return dto.DestinationResponseDTO{
		ID:        d.ID,
		Provider:  d.Provider,
		Account:   d.Account,
		IsDefault: d.IsDefault,
	}
}
