package ledger

import (
	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/city"
)

// AdjustBankAccountBalance moves an account balance by delta, flooring at
// zero, and returns the new balance. Missing accounts are left alone and
// report 0.
func AdjustBankAccountBalance(b *city.BankingState, account city.BankAccountType, delta int64) int64 {
	if b == nil || b.Accounts == nil || account == "" {
		return 0
	}
	acc, ok := b.Accounts[account]
	if !ok {
		return 0
	}
	acc.Balance = FloorZeroInt(acc.Balance + delta)
	b.Accounts[account] = acc
	return acc.Balance
}

// ApplyFinanceAccountChange mirrors an account movement into the finance
// ledger. City accounts move cityBudget.total; personal accounts move the
// mapped personal bucket. The return value is the part of delta that touched
// the city budget (0 for personal accounts).
func ApplyFinanceAccountChange(f *city.FinanceState, account city.BankAccountType, delta int64) int64 {
	if f == nil {
		return 0
	}
	if account.IsCity() {
		f.CityBudget.Total = FloorZeroInt(f.CityBudget.Total + delta)
		return delta
	}
	if f.PersonalFinances.Accounts == nil {
		f.PersonalFinances.Accounts = map[city.PersonalAccountType]int64{}
	}
	bucket := account.PersonalBucket()
	f.PersonalFinances.Accounts[bucket] = FloorZeroInt(f.PersonalFinances.Accounts[bucket] + delta)
	return 0
}

// Move applies delta to a bank account and its finance mirror, then resyncs
// the top-level budget. It returns the amount that actually moved, which is
// smaller than a requested withdrawal when the account runs dry.
func Move(g *city.GameState, account city.BankAccountType, delta int64) int64 {
	before := g.Banking.Balance(account)
	if _, ok := g.Banking.Accounts[account]; !ok {
		return 0
	}
	after := AdjustBankAccountBalance(&g.Banking, account, delta)
	moved := after - before
	ApplyFinanceAccountChange(&g.Finance, account, moved)
	SyncBudget(g)
	return moved
}

// SyncBudget re-derives budget and cityBudget.total from the city accounts
// and the personal mirrors from the personal accounts.
func SyncBudget(g *city.GameState) {
	g.Budget = g.Banking.CityBalance()
	g.Finance.CityBudget.Total = g.Budget
	if g.Finance.PersonalFinances.Accounts == nil {
		g.Finance.PersonalFinances.Accounts = map[city.PersonalAccountType]int64{}
	}
	for _, t := range []city.BankAccountType{city.AccountPersonalChecking, city.AccountPersonalSavings, city.AccountPersonalOffshore} {
		if acc, ok := g.Banking.Accounts[t]; ok {
			g.Finance.PersonalFinances.Accounts[t.PersonalBucket()] = acc.Balance
		}
	}
}

// DebitCity takes amount from the city accounts in funding order and returns
// the per-account contributions. The caller must have checked the total.
func DebitCity(g *city.GameState, amount int64) []city.Funding {
	var funding []city.Funding
	remaining := amount
	for _, t := range city.CityFundingOrder {
		if remaining <= 0 {
			break
		}
		take := min(g.Banking.Balance(t), remaining)
		if take <= 0 {
			continue
		}
		moved := -Move(g, t, -take)
		if moved <= 0 {
			continue
		}
		funding = append(funding, city.Funding{Account: t, Amount: moved})
		remaining -= moved
	}
	return funding
}

// Record prepends a transaction to the bank statement.
func Record(g *city.GameState, kind string, account city.BankAccountType, amount int64, description string) {
	tx := city.Transaction{
		ID:          uuid.NewString(),
		Year:        g.CurrentYear,
		Month:       g.CurrentMonth,
		Day:         g.CurrentDay,
		Type:        kind,
		Account:     account,
		Amount:      amount,
		Description: description,
	}
	g.Banking.TransactionHistory = Prepend(g.Banking.TransactionHistory, tx, city.TransactionHistoryCap)
}
