// Industry and construction programmes: month-counted projects with named
// phases, one-time completion effects and kickback bookkeeping.
package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/mayor-sim/internal/catalog"
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// PhaseCompleted is the phase of a finished programme.
const PhaseCompleted = "completed"

type phase struct {
	name  string
	start float64 // Progress percent at which the phase begins
}

var constructionPhases = []phase{
	{"design", 0},
	{"permits", 15},
	{"foundation", 35},
	{"structure", 65},
	{"finishing", 85},
	{"inspection", 95},
}

var industryPhases = []phase{
	{"preparation", 0},
	{"equipment", 30},
	{"commissioning", 70},
}

// programKind describes one family of programmes.
type programKind struct {
	name   string
	phases []phase
	income city.IncomeType
	lookup func(*catalog.Catalog, string) (catalog.ProgramDef, bool)
	state  func(*city.GameState) *city.ProgramState
}

var (
	industryKind = programKind{
		name:   "industry",
		phases: industryPhases,
		income: city.IncomeBusinessFees,
		lookup: (*catalog.Catalog).IndustrialProject,
		state:  func(g *city.GameState) *city.ProgramState { return &g.Industry },
	}
	constructionKind = programKind{
		name:   "construction",
		phases: constructionPhases,
		income: city.IncomePropertyRent,
		lookup: (*catalog.Catalog).ConstructionProject,
		state:  func(g *city.GameState) *city.ProgramState { return &g.Construction },
	}
)

// phaseFor names the phase a progress percentage falls in.
func phaseFor(phases []phase, progress float64) string {
	if progress >= 100 {
		return PhaseCompleted
	}
	name := phases[0].name
	for _, p := range phases {
		if progress >= p.start {
			name = p.name
		}
	}
	return name
}

func (m *month) industry()     { m.programs(industryKind) }
func (m *month) construction() { m.programs(constructionKind) }

func (m *month) programs(kind programKind) {
	g := m.g
	ps := kind.state(g)
	keep := make([]city.ProgramProject, 0, len(ps.Active))
	for _, p := range ps.Active {
		def, ok := kind.lookup(m.r.cat, p.CatalogID)
		if !ok {
			m.skip(kind.name, p.ID, "programme "+p.CatalogID+" not in catalog")
			keep = append(keep, p)
			continue
		}
		p.MonthsPassed++
		p.Progress = ledger.ClampPercent(float64(p.MonthsPassed) / float64(def.Duration) * 100)
		p.Phase = phaseFor(kind.phases, p.Progress)
		if p.MonthsPassed < def.Duration {
			keep = append(keep, p)
			continue
		}

		p.Phase = PhaseCompleted
		p.CompletedYear = g.CurrentYear
		p.CompletedMonth = g.CurrentMonth
		ps.Completed = ledger.Prepend(ps.Completed, p, city.CompletedProgramsCap)
		ps.JobsCreated += def.Jobs
		ps.AddedRevenue += def.Revenue
		if def.Revenue > 0 {
			g.Finance.CityBudget.MonthlyIncome[kind.income] += def.Revenue
		}
		m.r.applyEffects(g, def.Effects, kind.name+" "+def.ID)
		m.report.CompletedPrograms = append(m.report.CompletedPrograms, p.ID)
		m.r.log.Info("programme completed", "kind", kind.name, "id", def.ID, "jobs", def.Jobs)
	}
	ps.Active = keep
}

// StartIndustrialProject funds a catalog industrial programme.
func (r *Rules) StartIndustrialProject(g *city.GameState, id string) (*city.GameState, error) {
	return r.startProgram(g, industryKind, id)
}

// StartConstruction funds a catalog construction programme.
func (r *Rules) StartConstruction(g *city.GameState, id string) (*city.GameState, error) {
	return r.startProgram(g, constructionKind, id)
}

func (r *Rules) startProgram(g *city.GameState, kind programKind, id string) (*city.GameState, error) {
	action := "start_" + kind.name
	next, err := r.begin(g, action)
	if err != nil {
		return next, err
	}
	def, ok := kind.lookup(r.cat, id)
	if !ok {
		return r.reject(g, action, wrapf(ErrUnknownProject, "start %s %q", kind.name, id))
	}
	if next.Banking.CityBalance() < def.Cost {
		return r.reject(g, action, wrapf(ErrInsufficientFunds, "start %s %q: need %s", kind.name, id, ledger.FormatMoney(def.Cost)))
	}

	ledger.DebitCity(next, def.Cost)
	ledger.Record(next, kind.name+"_start", city.AccountCityChecking, -def.Cost, def.Title)

	kickback := ledger.Round(float64(def.Cost) * def.KickbackRate / 100)
	p := city.ProgramProject{
		ID:         uuid.NewString(),
		CatalogID:  def.ID,
		Title:      def.Title,
		Cost:       def.Cost,
		Duration:   def.Duration,
		Phase:      kind.phases[0].name,
		Kickback:   kickback,
		StartYear:  next.CurrentYear,
		StartMonth: next.CurrentMonth,
	}
	ps := kind.state(next)
	ps.Active = append(ps.Active, p)
	if kickback > 0 {
		ps.TotalKickbacks += kickback
		recordCorruption(next, kind.name, kickback, def.Title)
	}
	next.Government.MonthlyDecisions++

	r.log.Info("programme started", "kind", kind.name, "id", def.ID, "cost", def.Cost)
	return next, nil
}

// recordCorruption appends to the corruption log and raises investigation
// risk by one point per million.
func recordCorruption(g *city.GameState, source string, amount int64, description string) {
	g.Finance.CorruptionHistory = append(g.Finance.CorruptionHistory, city.CorruptionRecord{
		ID:          uuid.NewString(),
		Year:        g.CurrentYear,
		Month:       g.CurrentMonth,
		Amount:      amount,
		Source:      source,
		Description: description,
	})
	risks := &g.Finance.Risks
	risks.InvestigationRisk = ledger.ClampPercent(risks.InvestigationRisk + min(10, float64(amount)/float64(ledger.Million)))
	risks.PublicSuspicion = ledger.ClampPercent(risks.PublicSuspicion + min(5, float64(amount)/float64(2*ledger.Million)))
}
