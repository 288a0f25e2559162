package city

import "maps"

// NewGame builds the opening position: 50M across the city accounts, a
// middling mayor, and a balanced budget. Security agencies come from the
// catalog and are filled in by the engine.
func NewGame() *GameState {
	g := &GameState{
		MayorRating:      StartRating,
		Happiness:        60,
		Ecology:          55,
		Infrastructure:   50,
		Unemployment:     6,
		Population:       850_000,
		CorruptionLevel:  10,
		MediaAttention:   20,
		CurrentDay:       1,
		CurrentMonth:     1,
		CurrentYear:      StartYear,
		CurrentTimestamp: StartTimestamp(),
		ActiveProjects:   []Project{},
		EventHistory:     []EventDecision{},
		GameSpeed:        1,
	}

	g.Banking = BankingState{
		Accounts: map[BankAccountType]BankAccount{
			AccountCityChecking:     {Balance: 30_000_000, Bank: "Municipal Bank", AccountNumber: "40204-810-0001", InterestRate: 0, Currency: "RUB"},
			AccountCitySavings:      {Balance: 15_000_000, Bank: "Municipal Bank", AccountNumber: "40204-810-0002", InterestRate: 4, Currency: "RUB"},
			AccountCityInvestment:   {Balance: 5_000_000, Bank: "Regional Development Bank", AccountNumber: "40204-810-0003", InterestRate: 0, Currency: "RUB"},
			AccountPersonalChecking: {Balance: 500_000, Bank: "Sberegatelny", AccountNumber: "40817-810-1001", InterestRate: 0, Currency: "RUB"},
			AccountPersonalSavings:  {Balance: 2_000_000, Bank: "Sberegatelny", AccountNumber: "40817-810-1002", InterestRate: 5, Currency: "RUB"},
			AccountPersonalOffshore: {Balance: 0, Bank: "Island Trust", AccountNumber: "CY-0097-5521", InterestRate: 2, Currency: "EUR"},
		},
		Loans:              []Loan{},
		Deposits:           []Deposit{},
		CompletedDeposits:  []Deposit{},
		StockPortfolio:     StockPortfolio{City: map[string]StockHolding{}, Personal: map[string]StockHolding{}},
		TransactionHistory: []Transaction{},
	}

	expenses := map[BudgetCategory]int64{
		BudgetInfrastructure: 2_000_000,
		BudgetEducation:      1_500_000,
		BudgetHealthcare:     1_500_000,
		BudgetSecurity:       1_000_000,
		BudgetEcology:        600_000,
		BudgetSocial:         1_200_000,
		BudgetCulture:        300_000,
		BudgetAdministration: 700_000,
	}
	allocated := make(map[BudgetCategory]int64, len(expenses))
	spent := make(map[BudgetCategory]int64, len(expenses))
	for cat, v := range expenses {
		allocated[cat] = v*MonthsPerYear + 10_000_000
		spent[cat] = 0
	}

	g.Taxation = TaxationState{
		CurrentRates: map[TaxType]float64{
			TaxIncome: 13, TaxProperty: 2, TaxBusiness: 20, TaxLand: 1.5, TaxTransport: 5, TaxExcise: 10,
		},
		TaxBase: map[TaxType]int64{
			TaxIncome: 25_000_000, TaxProperty: 40_000_000, TaxBusiness: 8_000_000,
			TaxLand: 30_000_000, TaxTransport: 6_000_000, TaxExcise: 8_000_000,
		},
		CollectionEfficiency: map[TaxType]float64{
			TaxIncome: 85, TaxProperty: 80, TaxBusiness: 75, TaxLand: 70, TaxTransport: 70, TaxExcise: 80,
		},
		RevenueStructure:     map[string]Share{},
		ExpenditureStructure: map[string]Share{},
		ActivePolicies:       []string{},
		Debt:                 Debt{InterestRate: 9},
		Metrics:              TaxMetrics{RevenueByType: map[TaxType]int64{}},
	}

	g.Finance = FinanceState{
		CityBudget: CityBudget{
			Allocated: allocated,
			Spent:     spent,
			MonthlyIncome: map[IncomeType]int64{
				IncomeTaxes:            5_767_500,
				IncomeFederalSubsidies: 2_000_000,
				IncomeBusinessFees:     800_000,
				IncomePropertyRent:     400_000,
				IncomeOther:            100_000,
			},
			MonthlyExpenses: expenses,
			PassiveIncome:   map[IncomeType]int64{},
			ProjectExpenses: map[string]ProjectExpense{},
		},
		PersonalFinances: PersonalFinances{
			Accounts: map[PersonalAccountType]int64{
				PersonalChecking: 500_000,
				PersonalSavings:  2_000_000,
				PersonalOffshore: 0,
			},
			MonthlyIncome:   250_000,
			MonthlyExpenses: 120_000,
		},
		CorruptionHistory: []CorruptionRecord{},
		Risks: Risks{
			InvestigationRisk: 10,
			PublicSuspicion:   10,
			FederalAttention:  5,
			MediaAttention:    20,
		},
	}

	g.Government = GovernmentState{
		Departments: map[string]Department{
			"finance":        newDepartment("finance", "Finance Department", 4_000_000, "Ivanova", "Petrov", "Sokolova"),
			"infrastructure": newDepartment("infrastructure", "Infrastructure Department", 6_000_000, "Kuznetsov", "Volkova", "Morozov"),
			"social":         newDepartment("social", "Social Policy Department", 3_500_000, "Lebedeva", "Novikov", "Kozlova"),
			"ecology":        newDepartment("ecology", "Environmental Department", 2_000_000, "Orlov", "Pavlova", "Semenov"),
		},
	}

	g.Investment = InvestmentState{
		ActiveInvestments:    []Investment{},
		CompletedInvestments: []CompletedInvestment{},
	}
	g.Industry = ProgramState{Active: []ProgramProject{}, Completed: []ProgramProject{}}
	g.Construction = ProgramState{Active: []ProgramProject{}, Completed: []ProgramProject{}}

	g.Security = SecurityState{
		Agencies:      map[string]Agency{},
		ActiveThreats: []Threat{},
		Metrics: SecurityMetrics{
			InvestigationProbability: 10,
			CorruptionRisk:           10,
		},
	}

	g.Citizens = CitizensState{
		Groups: map[string]CitizenGroup{
			"workers":        {ID: "workers", Name: "Workers", Size: 320_000, Satisfaction: 55, Influence: 30},
			"pensioners":     {ID: "pensioners", Name: "Pensioners", Size: 210_000, Satisfaction: 50, Influence: 25},
			"students":       {ID: "students", Name: "Students", Size: 90_000, Satisfaction: 60, Influence: 10},
			"business":       {ID: "business", Name: "Business owners", Size: 40_000, Satisfaction: 58, Influence: 20},
			"intelligentsia": {ID: "intelligentsia", Name: "Intelligentsia", Size: 60_000, Satisfaction: 52, Influence: 15},
		},
		ActiveIssues: []CitizenIssue{},
	}

	g.PersonalSpending = PersonalSpendingState{
		Assets:            []Asset{},
		RecurringExpenses: []RecurringExpense{},
		SpendingHistory:   []SpendingRecord{},
		LifestyleQuality:  40,
		FamilyHappiness:   60,
	}

	g.Budget = g.Banking.CityBalance()
	g.Finance.CityBudget.Total = g.Budget
	g.PersonalFinances = maps.Clone(g.Finance.PersonalFinances.Accounts)
	g.CitizenGroups = maps.Clone(g.Citizens.Groups)
	return g
}

func newDepartment(id, name string, budget int64, staff ...string) Department {
	d := Department{ID: id, Name: name, Budget: budget, Efficiency: 60}
	positions := []string{"Head", "Deputy", "Specialist"}
	for i, surname := range staff {
		d.Employees = append(d.Employees, Employee{
			ID:         id + "-" + positions[i%len(positions)],
			Name:       surname,
			Position:   positions[i%len(positions)],
			Competence: 60 + float64(i*5),
			Loyalty:    55,
			Workload:   60,
			Mood:       60,
		})
	}
	return d
}
