package orders

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
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"github.com/gigmarket/escrowd/pkg/auth"
	"github.com/gigmarket/escrowd/pkg/utils"
)

type Service interface {
	Checkout(ctx context.Context, buyerID, sellerID int, subtotal decimal.Decimal) (*domain.Order, string, error)
	GetOrders(ctx context.Context, userID int) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID int, orderID uuid.UUID) (*domain.Order, error)
	Accept(ctx context.Context, sellerID int, orderID uuid.UUID) error
	Reject(ctx context.Context, sellerID int, orderID uuid.UUID) error
	Cancel(ctx context.Context, buyerID int, orderID uuid.UUID) error
	Deliver(ctx context.Context, sellerID int, orderID uuid.UUID) error
	RequestChanges(ctx context.Context, buyerID int, orderID uuid.UUID) error
	Complete(ctx context.Context, buyerID int, orderID uuid.UUID) error
}

type OrderHandler struct {
	orderService Service
	validate     *validator.Validate
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// Checkout godoc
//
//	@Summary		Create an order
//	@Description	Create an order with its invoice and a pending buyer charge, returning the reference to pass to the payment provider.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CheckoutRequestDTO	true	"Checkout payload"
//	@Success		201		{object}	dto.CheckoutResponseDTO	"Created order"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, paymentRef, err := h.orderService.Checkout(r.Context(), userID, req.SellerID, decimal.NewFromFloat(req.Subtotal))
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrInvalidCheckoutInput):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.CheckoutResponseDTO{
		OrderID:          order.ID.String(),
		TotalAmount:      order.TotalAmount.InexactFloat64(),
		PaymentReference: paymentRef,
	})
}

// GetOrders godoc
//
//	@Summary		List user orders
//	@Description	List every order the authenticated user participates in, newest first.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetOrderResponseDTO	"Orders"
//	@Success		204	{object}	utils.Response			"No orders"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orders, err := h.orderService.GetOrders(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Orders not found")
		return
	}

	response := make([]dto.GetOrderResponseDTO, len(orders))
	for i, order := range orders {
		response[i] = toOrderDTO(&order)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary		Get one order
//	@Description	Get a single order; only its buyer or seller may read it.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	dto.GetOrderResponseDTO	"Order"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrOrderNotFound), errors.Is(err, orderservice.ErrNotParticipant):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toOrderDTO(order))
}

// Accept godoc
//
//	@Summary		Accept an order
//	@Description	Seller accepts a paid order and commits to deliver it.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Accepted"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/accept [post]
func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Accept)
}

// Reject godoc
//
//	@Summary		Reject an order
//	@Description	Seller declines a new or paid order; a held payment is refunded to the buyer.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Rejected"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/reject [post]
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Reject)
}

// Cancel godoc
//
//	@Summary		Cancel an order
//	@Description	Buyer cancels before the seller accepts; a held payment is refunded.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Cancelled"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Cancel)
}

// Deliver godoc
//
//	@Summary		Mark an order delivered
//	@Description	Seller marks the work delivered, starting the buyer's confirmation window.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Delivered"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Deliver)
}

// RequestChanges godoc
//
//	@Summary		Request changes
//	@Description	Buyer sends a delivered order back for rework, starting the redelivery window.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Changes requested"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/request-changes [post]
func (h *OrderHandler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.RequestChanges)
}

// Complete godoc
//
//	@Summary		Complete an order
//	@Description	Buyer confirms the delivery; the escrow is released to the seller.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Order ID"
//	@Success		200	{string}	string			"Completed"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Transition not allowed"
//	@Router			/api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderService.Complete)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID int, orderID uuid.UUID) error) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := fn(r.Context(), userID, orderID); err != nil {
		switch {
		case errors.Is(err, orderservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, orderservice.ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, orderservice.ErrOrderInDispute),
			errors.Is(err, orderservice.ErrInvalidTransition),
			errors.Is(err, orderservice.ErrOrderNotPaid):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "ok")
}

func toOrderDTO(order *domain.Order) dto.GetOrderResponseDTO {
	return dto.GetOrderResponseDTO{
		ID:             order.ID.String(),
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		Status:         order.Status,
		TotalAmount:    order.TotalAmount.InexactFloat64(),
		AutoCompleteAt: order.AutoCompleteAt,
		CreatedAt:      order.CreatedAt,
	}
}
