package engine

import (
	"math"
	"testing"

	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

func testAgencies() map[string]city.Agency {
	return map[string]city.Agency{
		"police":      {ID: "police", Attitude: city.AttitudeControlled, Budget: 120_000_000},
		"prosecutor":  {ID: "prosecutor", Attitude: city.AttitudeNeutral, Budget: 60_000_000},
		"fsb":         {ID: "fsb", Attitude: city.AttitudeHostile, Budget: 200_000_000},
		"tax_service": {ID: "tax_service", Attitude: city.AttitudeFriendly, Budget: 20_000_000},
	}
}

func TestSecurityStep(t *testing.T) {
	full := make([]city.Threat, city.ActiveThreatsCap)
	for i := range full {
		full[i] = city.Threat{ID: string(rune('a' + i)), AgencyID: "fsb", Severity: 1, Progress: 50, Escalation: true}
	}
	tests := []struct {
		name         string
		src          fixedSource
		threats      []city.Threat
		prosecutor   city.AgencyAttitude
		wantProgress map[string]float64 // by ID; the new threat is keyed by its title
		wantFront    string
		wantLevel    float64
		wantMedia    float64
	}{
		{
			name: "fade escalate and drop",
			src:  fixedSource{f: 0.99},
			threats: []city.Threat{
				{ID: "a", AgencyID: "tax_service", Severity: 2, Progress: 15},
				{ID: "b", AgencyID: "police", Severity: 4, Progress: 5},
				{ID: "c", AgencyID: "prosecutor", Severity: 3, Progress: 50, Escalation: true},
			},
			wantProgress: map[string]float64{"a": 5, "c": 65},
			wantLevel:    3,
		},
		{
			name:         "escalation stops at 100",
			src:          fixedSource{f: 0.99},
			threats:      []city.Threat{{ID: "a", AgencyID: "fsb", Severity: 5, Progress: 95, Escalation: true}},
			wantProgress: map[string]float64{"a": 100},
			wantLevel:    5,
		},
		{
			name:         "new threat goes in front of a full list",
			src:          fixedSource{f: 0, n: 0},
			threats:      full,
			wantProgress: map[string]float64{"Budget audit": threatStart, "a": 65, "b": 65, "c": 65, "d": 65},
			wantFront:    "Budget audit",
			wantLevel:    2,
			wantMedia:    threatMediaImpact,
		},
		{
			name:         "protective agency blocks escalation",
			src:          fixedSource{f: 0, n: 1},
			prosecutor:   city.AttitudeFriendly,
			wantProgress: map[string]float64{"Corruption probe into city contracts": threatStart},
			wantFront:    "Corruption probe into city contracts",
			wantLevel:    3,
			wantMedia:    threatMediaImpact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRules(tt.src)
			g := r.NewGame()
			g.Security.Agencies = testAgencies()
			if tt.prosecutor != "" {
				a := g.Security.Agencies["prosecutor"]
				a.Attitude = tt.prosecutor
				g.Security.Agencies["prosecutor"] = a
			}
			g.Security.ActiveThreats = append([]city.Threat(nil), tt.threats...)
			g.Security.Metrics.InvestigationProbability = 100
			media := g.MediaAttention

			report := runMonthStep(r, g, (*month).security)

			sec := g.Security
			if len(sec.ActiveThreats) != len(tt.wantProgress) {
				t.Fatalf("threats = %+v, want %d", sec.ActiveThreats, len(tt.wantProgress))
			}
			if len(sec.ActiveThreats) > city.ActiveThreatsCap {
				t.Errorf("threats = %d, over the cap", len(sec.ActiveThreats))
			}
			for _, th := range sec.ActiveThreats {
				key := th.ID
				if th.Title != "" {
					key = th.Title
				}
				want, ok := tt.wantProgress[key]
				if !ok {
					t.Errorf("unexpected threat %+v", th)
					continue
				}
				if !near(th.Progress, want) {
					t.Errorf("threat %s progress = %v, want %v", key, th.Progress, want)
				}
			}
			if tt.wantFront != "" {
				front := sec.ActiveThreats[0]
				if front.Title != tt.wantFront || report.NewThreat != tt.wantFront {
					t.Errorf("front = %q, report = %q, want %q", front.Title, report.NewThreat, tt.wantFront)
				}
				if front.Escalation {
					t.Error("new threat escalates")
				}
			}
			if sec.Metrics.OverallThreatLevel != tt.wantLevel {
				t.Errorf("overallThreatLevel = %v, want %v", sec.Metrics.OverallThreatLevel, tt.wantLevel)
			}
			if got := g.MediaAttention - media; !near(got, tt.wantMedia) {
				t.Errorf("mediaAttention moved by %v, want %v", got, tt.wantMedia)
			}
			// Controlled police and friendly tax service hold 140M of 400M.
			wantProtection := 35.0
			if tt.prosecutor == city.AttitudeFriendly {
				wantProtection = 50
			}
			if !near(sec.Metrics.ProtectionLevel, wantProtection) {
				t.Errorf("protectionLevel = %v, want %v", sec.Metrics.ProtectionLevel, wantProtection)
			}
		})
	}
}

func TestSecurityStepAgesThreats(t *testing.T) {
	r := newTestRules(nil)
	g := r.NewGame()
	g.Security.Agencies = testAgencies()
	g.Security.ActiveThreats = []city.Threat{{ID: "a", AgencyID: "fsb", Severity: 2, Progress: 50, Age: 3}}

	runMonthStep(r, g, (*month).security)

	if got := g.Security.ActiveThreats[0].Age; got != 4 {
		t.Errorf("age = %d, want 4", got)
	}
	if got := g.Security.Agencies["fsb"].CurrentInvestigations; got != 1 {
		t.Errorf("fsb investigations = %d, want 1", got)
	}
}

func TestCitizensStep(t *testing.T) {
	tests := []struct {
		name       string
		issues     []city.CitizenIssue
		wantSat    map[string]float64
		wantRate   float64
		happiness  float64
		wantHappy  float64
		wantSatAll float64
	}{
		{
			name:       "no open complaints",
			wantSat:    map[string]float64{"workers": 59.75, "pensioners": 23.75},
			happiness:  50,
			wantSatAll: 50.75,
			wantHappy:  0.7*50 + 0.3*50.75,
		},
		{
			name:       "open complaint weighs on its group",
			issues:     []city.CitizenIssue{{ID: "i1", GroupID: "pensioners", Severity: 10}},
			wantSat:    map[string]float64{"workers": 60.5, "pensioners": 24},
			wantRate:   10,
			happiness:  80,
			wantSatAll: 51.375,
			wantHappy:  0.7*80 + 0.3*51.375,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRules(nil)
			g := r.NewGame()
			g.Citizens.Groups = map[string]city.CitizenGroup{
				"workers":    {ID: "workers", Size: 300, Satisfaction: 60},
				"pensioners": {ID: "pensioners", Size: 100, Satisfaction: 20},
			}
			g.Citizens.ActiveIssues = tt.issues
			g.Happiness = tt.happiness
			// Groups drift a tenth of the way to (happiness + 50 + 50 + 80) / 4.
			g.Infrastructure = 50
			g.Ecology = 50
			g.Unemployment = 4

			runMonthStep(r, g, (*month).citizens)

			for id, want := range tt.wantSat {
				if got := g.Citizens.Groups[id].Satisfaction; math.Abs(got-want) > 1e-6 {
					t.Errorf("%s satisfaction = %v, want %v", id, got, want)
				}
			}
			if got := g.Citizens.Metrics.OverallSatisfaction; math.Abs(got-tt.wantSatAll) > 1e-6 {
				t.Errorf("overall satisfaction = %v, want %v", got, tt.wantSatAll)
			}
			if math.Abs(g.Happiness-tt.wantHappy) > 1e-6 {
				t.Errorf("happiness = %v, want %v", g.Happiness, tt.wantHappy)
			}
			if !near(g.Citizens.Metrics.ComplaintRate, tt.wantRate) {
				t.Errorf("complaintRate = %v, want %v", g.Citizens.Metrics.ComplaintRate, tt.wantRate)
			}
		})
	}
}

func TestTaxationStep(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *city.GameState)
		taxes int64
	}{
		{
			name: "single tax",
			setup: func(g *city.GameState) {
				tx := &g.Taxation
				tx.TaxBase = map[city.TaxType]int64{city.TaxIncome: 10_000_000}
				tx.CurrentRates = map[city.TaxType]float64{city.TaxIncome: 13}
				tx.CollectionEfficiency = map[city.TaxType]float64{city.TaxIncome: 90}
			},
			taxes: 1_170_000,
		},
		{
			name: "project expense joins its category",
			setup: func(g *city.GameState) {
				tx := &g.Taxation
				tx.TaxBase = map[city.TaxType]int64{city.TaxProperty: 4_000_000, city.TaxLand: 1_000_000}
				tx.CurrentRates = map[city.TaxType]float64{city.TaxProperty: 2, city.TaxLand: 10}
				tx.CollectionEfficiency = map[city.TaxType]float64{city.TaxProperty: 50, city.TaxLand: 100}
				g.Finance.CityBudget.ProjectExpenses["green_zones"] = city.ProjectExpense{Category: city.BudgetEcology, Amount: 200_000}
			},
			taxes: 140_000,
		},
		{
			name: "no taxes collected",
			setup: func(g *city.GameState) {
				g.Taxation.CollectionEfficiency = map[city.TaxType]float64{}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRules(nil)
			g := r.NewGame()
			tt.setup(g)
			g.Taxation.RevenueStructure = map[string]city.Share{"stale": {Amount: 1, Percentage: 100}}
			g.Taxation.ExpenditureStructure = map[string]city.Share{"stale": {Amount: 1, Percentage: 100}}

			runMonthStep(r, g, (*month).taxation)

			b := g.Finance.CityBudget
			if got := b.MonthlyIncome[city.IncomeTaxes]; got != tt.taxes {
				t.Errorf("tax income = %d, want %d", got, tt.taxes)
			}
			if g.Taxation.Metrics.TotalRevenue != tt.taxes {
				t.Errorf("totalRevenue = %d, want %d", g.Taxation.Metrics.TotalRevenue, tt.taxes)
			}

			income := map[string]int64{}
			for k, v := range b.MonthlyIncome {
				income[string(k)] = v
			}
			checkShares(t, "revenue", g.Taxation.RevenueStructure, income)
			spend := map[string]int64{}
			for k, v := range b.ExpenseBreakdown() {
				spend[string(k)] = v
			}
			checkShares(t, "expenditure", g.Taxation.ExpenditureStructure, spend)
		})
	}
}

func checkShares(t *testing.T, label string, got map[string]city.Share, amounts map[string]int64) {
	t.Helper()
	if len(got) != len(amounts) {
		t.Fatalf("%s structure has %d lines, want %d: %+v", label, len(got), len(amounts), got)
	}
	var total int64
	for _, v := range amounts {
		total += v
	}
	var sum float64
	for k, v := range amounts {
		s, ok := got[k]
		if !ok {
			t.Errorf("%s structure missing %q", label, k)
			continue
		}
		if s.Amount != v {
			t.Errorf("%s %q amount = %d, want %d", label, k, s.Amount, v)
		}
		if want := ledger.Percent(v, total); !near(s.Percentage, want) {
			t.Errorf("%s %q share = %v, want %v", label, k, s.Percentage, want)
		}
		sum += s.Percentage
	}
	if total > 0 && math.Abs(sum-100) > 1e-6 {
		t.Errorf("%s shares sum to %v, want 100", label, sum)
	}
}
