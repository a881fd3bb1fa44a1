package repo

import (
	"github.com/gigmarket/escrowd/internal/pg"
	balancerepo "github.com/gigmarket/escrowd/internal/repo/balance-repo"
	disputerepo "github.com/gigmarket/escrowd/internal/repo/dispute-repo"
	ledgerrepo "github.com/gigmarket/escrowd/internal/repo/ledger-repo"
	orderrepo "github.com/gigmarket/escrowd/internal/repo/order-repo"
	treasuryrepo "github.com/gigmarket/escrowd/internal/repo/treasury-repo"
	withdrawalrepo "github.com/gigmarket/escrowd/internal/repo/withdrawal-repo"
)

// Repositories exposes the concrete repositories; each service narrows
// them to its own consumer interface.
type Repositories struct {
	Treasury   *treasuryrepo.Repository
	Balance    *balancerepo.Repository
	Ledger     *ledgerrepo.Repository
	Order      *orderrepo.Repository
	Dispute    *disputerepo.Repository
	Withdrawal *withdrawalrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		Treasury:   treasuryrepo.New(conn),
		Balance:    balancerepo.New(conn),
		Ledger:     ledgerrepo.New(conn),
		Order:      orderrepo.New(conn),
		Dispute:    disputerepo.New(conn),
		Withdrawal: withdrawalrepo.New(conn),
	}
}
