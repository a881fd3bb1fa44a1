package service

import (
	"github.com/gigmarket/escrowd/internal/config"
	"github.com/gigmarket/escrowd/internal/pg"
	"github.com/gigmarket/escrowd/internal/repo"
	"github.com/gigmarket/escrowd/internal/service/escrowservice"
	"github.com/gigmarket/escrowd/internal/service/ledgerservice"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"github.com/gigmarket/escrowd/internal/service/withdrawalservice"
)

type Services struct {
	LedgerService     *ledgerservice.Service
	EscrowService     *escrowservice.Service
	OrderService      *orderservice.Service
	WithdrawalService *withdrawalservice.Service
}

func New(cfg *config.Config, repos *repo.Repositories, txManager pg.TXManager, notifier orderservice.Notifier, publisher orderservice.Publisher) *Services {
	ledgerService := ledgerservice.New(repos.Treasury, repos.Balance, repos.Ledger)
	escrowService := escrowservice.New(ledgerService, repos.Order, txManager)
	orderService := orderservice.New(
		orderservice.Config{
			SellerFeePercent:  cfg.SellerFee(),
			PlatformFlatFee:   cfg.FlatFee(),
			AutoCompleteAfter: cfg.AutoCompleteAfter,
			RedeliveryWindow:  cfg.RedeliveryWindow,
		},
		repos.Order, repos.Dispute, repos.Ledger, escrowService, txManager, notifier, publisher,
	)
	withdrawalService := withdrawalservice.New(cfg.MinWithdrawalAmount(), repos.Balance, repos.Ledger, repos.Withdrawal, txManager)

	return &Services{
		LedgerService:     ledgerService,
		EscrowService:     escrowService,
		OrderService:      orderService,
		WithdrawalService: withdrawalService,
	}
}
