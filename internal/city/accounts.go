package city

import "strings"

// BankAccountType identifies one of the six bank accounts in play.
type BankAccountType string

const (
	AccountCityChecking     BankAccountType = "city_checking"
	AccountCitySavings      BankAccountType = "city_savings"
	AccountCityInvestment   BankAccountType = "city_investment"
	AccountPersonalChecking BankAccountType = "personal_checking"
	AccountPersonalSavings  BankAccountType = "personal_savings"
	AccountPersonalOffshore BankAccountType = "personal_offshore"
)

// CityFundingOrder is the debit priority used when the city pays for something.
var CityFundingOrder = []BankAccountType{AccountCityChecking, AccountCitySavings, AccountCityInvestment}

// AllBankAccounts lists every account type.
var AllBankAccounts = []BankAccountType{
	AccountCityChecking, AccountCitySavings, AccountCityInvestment,
	AccountPersonalChecking, AccountPersonalSavings, AccountPersonalOffshore,
}

// IsCity reports whether the account belongs to the municipality.
func (t BankAccountType) IsCity() bool {
	return strings.HasPrefix(string(t), "city_")
}

// PersonalBucket maps a personal bank account onto the personal finance bucket
// it mirrors. Unknown personal accounts fall back to checking.
func (t BankAccountType) PersonalBucket() PersonalAccountType {
	switch t {
	case AccountPersonalSavings:
		return PersonalSavings
	case AccountPersonalOffshore:
		return PersonalOffshore
	default:
		return PersonalChecking
	}
}

// PersonalAccountType is a bucket of the mayor's own money.
type PersonalAccountType string

const (
	PersonalChecking PersonalAccountType = "checking"
	PersonalSavings  PersonalAccountType = "savings"
	PersonalOffshore PersonalAccountType = "offshore"
)

// BudgetCategory is a line of the city budget.
type BudgetCategory string

const (
	BudgetInfrastructure BudgetCategory = "infrastructure"
	BudgetEducation      BudgetCategory = "education"
	BudgetHealthcare     BudgetCategory = "healthcare"
	BudgetSecurity       BudgetCategory = "security"
	BudgetEcology        BudgetCategory = "ecology"
	BudgetSocial         BudgetCategory = "social"
	BudgetCulture        BudgetCategory = "culture"
	BudgetAdministration BudgetCategory = "administration"
)

// AllBudgetCategories lists the budget lines in display order.
var AllBudgetCategories = []BudgetCategory{
	BudgetInfrastructure, BudgetEducation, BudgetHealthcare, BudgetSecurity,
	BudgetEcology, BudgetSocial, BudgetCulture, BudgetAdministration,
}

// IncomeType is a line of city income.
type IncomeType string

const (
	IncomeTaxes             IncomeType = "taxes"
	IncomeFederalSubsidies  IncomeType = "federal_subsidies"
	IncomeBusinessFees      IncomeType = "business_fees"
	IncomePropertyRent      IncomeType = "property_rent"
	IncomeDepositInterest   IncomeType = "deposit_interest"
	IncomeInvestmentReturns IncomeType = "investment_returns"
	IncomeOther             IncomeType = "other"
)

// TaxType is a municipal tax.
type TaxType string

const (
	TaxIncome    TaxType = "income"
	TaxProperty  TaxType = "property"
	TaxBusiness  TaxType = "business"
	TaxLand      TaxType = "land"
	TaxTransport TaxType = "transport"
	TaxExcise    TaxType = "excise"
)

// AllTaxTypes lists the taxes in display order.
var AllTaxTypes = []TaxType{TaxIncome, TaxProperty, TaxBusiness, TaxLand, TaxTransport, TaxExcise}

// ProjectCategory classifies a city project.
type ProjectCategory string

const (
	CategoryInfrastructure ProjectCategory = "infrastructure"
	CategoryEcology        ProjectCategory = "ecology"
	CategorySocial         ProjectCategory = "social"
	CategoryEconomy        ProjectCategory = "economy"
	CategoryEducation      ProjectCategory = "education"
	CategoryHealthcare     ProjectCategory = "healthcare"
	CategoryCulture        ProjectCategory = "culture"
	CategorySecurity       ProjectCategory = "security"
	CategoryTransport      ProjectCategory = "transport"
)

// BudgetCategory returns the budget line that pays for projects of this
// category. Anything unmapped is charged to infrastructure.
func (c ProjectCategory) BudgetCategory() BudgetCategory {
	switch c {
	case CategoryEcology:
		return BudgetEcology
	case CategorySocial:
		return BudgetSocial
	case CategoryEducation:
		return BudgetEducation
	case CategoryHealthcare:
		return BudgetHealthcare
	case CategoryCulture:
		return BudgetCulture
	case CategorySecurity:
		return BudgetSecurity
	case CategoryEconomy:
		return BudgetAdministration
	default:
		return BudgetInfrastructure
	}
}
