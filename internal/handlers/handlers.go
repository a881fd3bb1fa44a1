package handlers

import (
	"net/http"

	_ "github.com/gigmarket/escrowd/docs"
	adminhandlers "github.com/gigmarket/escrowd/internal/handlers/admin"
	balancehandlers "github.com/gigmarket/escrowd/internal/handlers/balance"
	disputehandlers "github.com/gigmarket/escrowd/internal/handlers/disputes"
	ordershandlers "github.com/gigmarket/escrowd/internal/handlers/orders"
	webhookhandlers "github.com/gigmarket/escrowd/internal/handlers/webhooks"
	"github.com/gigmarket/escrowd/internal/service"
	"github.com/gigmarket/escrowd/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type OrderHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Deliver(w http.ResponseWriter, r *http.Request)
	RequestChanges(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	AddDestination(w http.ResponseWriter, r *http.Request)
	GetDestinations(w http.ResponseWriter, r *http.Request)
}

type DisputeHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Payment(w http.ResponseWriter, r *http.Request)
	Payout(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Reconciliation(w http.ResponseWriter, r *http.Request)
	EscrowBalance(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	OrderHandler   OrderHandler
	BalanceHandler BalanceHandler
	DisputeHandler DisputeHandler
	WebhookHandler WebhookHandler
	AdminHandler   AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		OrderHandler:   ordershandlers.New(s.OrderService),
		BalanceHandler: balancehandlers.New(s.WithdrawalService),
		DisputeHandler: disputehandlers.New(s.OrderService),
		WebhookHandler: webhookhandlers.New(s.OrderService, s.WithdrawalService),
		AdminHandler:   adminhandlers.New(s.LedgerService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api/webhooks", func(r chi.Router) {
		r.Post("/payment", h.WebhookHandler.Payment)
		r.Post("/payout", h.WebhookHandler.Payout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.jwtService))

		r.Route("/api/orders", func(r chi.Router) {
			r.Post("/", h.OrderHandler.Checkout)
			r.Get("/", h.OrderHandler.GetOrders)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.OrderHandler.GetOrder)
				r.Post("/accept", h.OrderHandler.Accept)
				r.Post("/reject", h.OrderHandler.Reject)
				r.Post("/cancel", h.OrderHandler.Cancel)
				r.Post("/deliver", h.OrderHandler.Deliver)
				r.Post("/request-changes", h.OrderHandler.RequestChanges)
				r.Post("/complete", h.OrderHandler.Complete)
				r.Post("/dispute", h.DisputeHandler.Open)
			})
		})

		r.Route("/api/user", func(r chi.Router) {
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/withdraw", h.BalanceHandler.Withdraw)
			})
			r.Get("/withdrawals", h.BalanceHandler.GetWithdrawals)
			r.Route("/payout-destinations", func(r chi.Router) {
				r.Post("/", h.BalanceHandler.AddDestination)
				r.Get("/", h.BalanceHandler.GetDestinations)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminOnly)
			r.Post("/api/disputes/{id}/resolve", h.DisputeHandler.Resolve)
			r.Route("/api/admin", func(r chi.Router) {
				r.Get("/orders/{id}/reconciliation", h.AdminHandler.Reconciliation)
				r.Get("/escrow-balance", h.AdminHandler.EscrowBalance)
			})
		})
	})

	return r
}
