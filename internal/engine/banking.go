// Banking: loans, deposits and their monthly servicing.
package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// MissedPaymentRisk is added to investigation probability per missed loan
// payment.
const MissedPaymentRisk = 3.0

var (
	decOne      = decimal.NewFromInt(1)
	decMonthPct = decimal.NewFromInt(1200)
)

// monthlyRate converts an annual percentage into a monthly fraction.
func monthlyRate(annualPct float64) decimal.Decimal {
	return decimal.NewFromFloat(annualPct).Div(decMonthPct)
}

// AmortizedPayment returns the level monthly payment that retires principal
// over months at the annual rate, rounded up to a whole unit:
// P·r·(1+r)^n / ((1+r)^n − 1).
func AmortizedPayment(principal int64, annualPct float64, months int) int64 {
	if principal <= 0 {
		return 0
	}
	p := decimal.NewFromInt(principal)
	if months <= 1 {
		return p.Add(p.Mul(monthlyRate(annualPct))).Ceil().IntPart()
	}
	n := decimal.NewFromInt(int64(months))
	if annualPct <= 0 {
		return p.Div(n).Ceil().IntPart()
	}
	r := monthlyRate(annualPct)
	f := decOne.Add(r).Pow(n)
	return p.Mul(r).Mul(f).Div(f.Sub(decOne)).Ceil().IntPart()
}

// monthInterest is one month of interest on amount, rounded.
func monthInterest(amount int64, annualPct float64) int64 {
	if amount <= 0 || annualPct <= 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(monthlyRate(annualPct)).Round(0).IntPart()
}

// serviceLoans collects the due instalment of every open loan. A loan whose
// account cannot cover the payment goes overdue and stays open.
func (m *month) serviceLoans() {
	g := m.g
	for i := range g.Banking.Loans {
		l := &g.Banking.Loans[i]
		if !l.Open() {
			continue
		}
		interest := monthInterest(l.RemainingAmount, l.InterestRate)
		due := l.MonthlyPayment
		if due == 0 {
			due = AmortizedPayment(l.RemainingAmount, l.InterestRate, l.RemainingMonths)
		}
		if l.RemainingMonths <= 1 || due > l.RemainingAmount+interest {
			due = l.RemainingAmount + interest
		}

		if g.Banking.Balance(l.Account) < due {
			l.Status = city.LoanOverdue
			l.MissedPayments++
			sm := &g.Security.Metrics
			sm.InvestigationProbability = ledger.ClampPercent(sm.InvestigationProbability + MissedPaymentRisk)
			m.report.MissedPayments++
			m.r.log.Warn("loan payment missed", "loan", l.ID, "due", due, "missed", l.MissedPayments)
			continue
		}

		ledger.Move(g, l.Account, -due)
		principal := due - interest
		l.RemainingAmount = ledger.FloorZeroInt(l.RemainingAmount - principal)
		l.RemainingMonths--
		l.Status = city.LoanActive
		l.PaymentHistory = ledger.Prepend(l.PaymentHistory, city.LoanPayment{
			Year: g.CurrentYear, Month: g.CurrentMonth, Amount: due, Interest: interest, Principal: principal,
		}, city.PaymentHistoryCap)
		ledger.Record(g, "loan_payment", l.Account, -due, l.Bank+" loan payment")
		m.report.LoanPayments += due

		if l.RemainingAmount <= 1 || l.RemainingMonths <= 0 {
			l.Status = city.LoanCompleted
			l.RemainingAmount = 0
			m.r.log.Info("loan repaid", "loan", l.ID, "bank", l.Bank)
		}
	}
}

// accrueDeposits compounds one month of interest on every deposit and pays
// out the ones that mature.
func (m *month) accrueDeposits() {
	g := m.g
	keep := make([]city.Deposit, 0, len(g.Banking.Deposits))
	for _, d := range g.Banking.Deposits {
		interest := monthInterest(d.Amount+d.AccruedInterest, d.InterestRate)
		d.AccruedInterest += interest
		if d.Account.IsCity() {
			g.Finance.CityBudget.PassiveIncome[city.IncomeDepositInterest] += interest
		} else {
			g.Finance.PersonalFinances.PassiveIncome += interest
		}
		m.report.DepositInterest += interest

		d.RemainingMonths--
		if d.RemainingMonths > 0 {
			keep = append(keep, d)
			continue
		}
		payout := d.Amount + d.AccruedInterest
		ledger.Move(g, d.Account, payout)
		ledger.Record(g, "deposit_maturity", d.Account, payout, d.Bank+" deposit matured")
		g.Banking.CompletedDeposits = ledger.Prepend(g.Banking.CompletedDeposits, d, city.CompletedDepositsCap)
		m.report.MaturedDeposits = append(m.report.MaturedDeposits, d.ID)
	}
	g.Banking.Deposits = keep
}

// TakeLoan borrows amount under a catalog offer and credits the offer's
// account.
func (r *Rules) TakeLoan(g *city.GameState, offerID string, amount int64) (*city.GameState, error) {
	next, err := r.begin(g, "take_loan")
	if err != nil {
		return next, err
	}
	offer, ok := r.cat.LoanOffer(offerID)
	if !ok {
		return r.reject(g, "take_loan", wrapf(ErrUnknownOffer, "take loan %q", offerID))
	}
	if amount < offer.MinAmount || (offer.MaxAmount > 0 && amount > offer.MaxAmount) {
		return r.reject(g, "take_loan", wrapf(ErrAmountOutOfRange, "take loan %q: %s", offerID, ledger.FormatMoney(amount)))
	}
	if offer.MinRating > 0 && g.MayorRating < offer.MinRating {
		return r.reject(g, "take_loan", wrapf(ErrRequirementsNotMet, "take loan %q: rating below %.0f", offerID, offer.MinRating))
	}
	if _, ok := next.Banking.Accounts[offer.Account]; !ok {
		return r.reject(g, "take_loan", wrapf(ErrUnknownAccount, "take loan %q: %s", offerID, offer.Account))
	}

	ledger.Move(next, offer.Account, amount)
	loan := city.Loan{
		ID:              uuid.NewString(),
		OfferID:         offer.ID,
		Bank:            offer.Bank,
		Account:         offer.Account,
		Principal:       amount,
		RemainingAmount: amount,
		InterestRate:    offer.InterestRate,
		TermMonths:      offer.TermMonths,
		RemainingMonths: offer.TermMonths,
		MonthlyPayment:  AmortizedPayment(amount, offer.InterestRate, offer.TermMonths),
		Status:          city.LoanActive,
		StartYear:       next.CurrentYear,
		StartMonth:      next.CurrentMonth,
	}
	next.Banking.Loans = append(next.Banking.Loans, loan)
	ledger.Record(next, "loan", offer.Account, amount, offer.Bank+": "+offer.Title)
	refreshDebt(next)
	next.Government.MonthlyDecisions++

	r.log.Info("loan taken", "bank", offer.Bank, "amount", amount, "payment", loan.MonthlyPayment)
	return next, nil
}

// OpenDeposit moves amount from account into a fixed-term deposit.
func (r *Rules) OpenDeposit(g *city.GameState, offerID string, account city.BankAccountType, amount int64) (*city.GameState, error) {
	next, err := r.begin(g, "open_deposit")
	if err != nil {
		return next, err
	}
	offer, ok := r.cat.DepositOffer(offerID)
	if !ok {
		return r.reject(g, "open_deposit", wrapf(ErrUnknownOffer, "open deposit %q", offerID))
	}
	if amount <= 0 || amount < offer.MinAmount {
		return r.reject(g, "open_deposit", wrapf(ErrAmountOutOfRange, "open deposit %q: minimum %s", offerID, ledger.FormatMoney(offer.MinAmount)))
	}
	if _, ok := next.Banking.Accounts[account]; !ok {
		return r.reject(g, "open_deposit", wrapf(ErrUnknownAccount, "open deposit %q: %s", offerID, account))
	}
	if next.Banking.Balance(account) < amount {
		return r.reject(g, "open_deposit", wrapf(ErrInsufficientFunds, "open deposit %q", offerID))
	}

	ledger.Move(next, account, -amount)
	next.Banking.Deposits = append(next.Banking.Deposits, city.Deposit{
		ID:              uuid.NewString(),
		OfferID:         offer.ID,
		Bank:            offer.Bank,
		Account:         account,
		Amount:          amount,
		InterestRate:    offer.InterestRate,
		TermMonths:      offer.TermMonths,
		RemainingMonths: offer.TermMonths,
		StartYear:       next.CurrentYear,
		StartMonth:      next.CurrentMonth,
	})
	ledger.Record(next, "deposit", account, -amount, offer.Bank+": "+offer.Title)
	next.Government.MonthlyDecisions++

	r.log.Info("deposit opened", "bank", offer.Bank, "amount", amount, "account", string(account))
	return next, nil
}
