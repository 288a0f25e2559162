package catalog

import "github.com/talgya/mayor-sim/internal/city"

func find[T any](items []T, id func(T) string, want string) (T, bool) {
	for _, it := range items {
		if id(it) == want {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Catalog) Project(id string) (ProjectDef, bool) {
	return find(c.Projects, func(p ProjectDef) string { return p.ID }, id)
}

// Event returns a copy of the event so callers can keep it on state.
func (c *Catalog) Event(id string) (city.Event, bool) {
	e, ok := find(c.Events, func(e city.Event) string { return e.ID }, id)
	if !ok {
		return e, false
	}
	return e.Clone(), true
}

func (c *Catalog) Opportunity(id string) (Opportunity, bool) {
	return find(c.Opportunities, func(o Opportunity) string { return o.ID }, id)
}

func (c *Catalog) LoanOffer(id string) (LoanOffer, bool) {
	return find(c.LoanOffers, func(l LoanOffer) string { return l.ID }, id)
}

func (c *Catalog) DepositOffer(id string) (DepositOffer, bool) {
	return find(c.DepositOffers, func(d DepositOffer) string { return d.ID }, id)
}

func (c *Catalog) TaxPolicy(id string) (TaxPolicy, bool) {
	return find(c.TaxPolicies, func(t TaxPolicy) string { return t.ID }, id)
}

func (c *Catalog) Agency(id string) (AgencyDef, bool) {
	return find(c.Agencies, func(a AgencyDef) string { return a.ID }, id)
}

func (c *Catalog) Issue(id string) (IssueTemplate, bool) {
	return find(c.Issues, func(i IssueTemplate) string { return i.ID }, id)
}

func (c *Catalog) IndustrialProject(id string) (ProgramDef, bool) {
	return find(c.Industrial, func(p ProgramDef) string { return p.ID }, id)
}

func (c *Catalog) ConstructionProject(id string) (ProgramDef, bool) {
	return find(c.Construction, func(p ProgramDef) string { return p.ID }, id)
}

func (c *Catalog) Asset(id string) (AssetDef, bool) {
	return find(c.Assets, func(a AssetDef) string { return a.ID }, id)
}

// Kinds lists the table names Table accepts.
var Kinds = []string{
	"projects", "events", "opportunities", "loans", "deposits", "tax-policies",
	"agencies", "threats", "issues", "industry", "construction", "assets",
}

// Table returns one table by its public name, for listing endpoints.
func (c *Catalog) Table(kind string) (any, bool) {
	switch kind {
	case "projects":
		return c.Projects, true
	case "events":
		return c.Events, true
	case "opportunities":
		return c.Opportunities, true
	case "loans":
		return c.LoanOffers, true
	case "deposits":
		return c.DepositOffers, true
	case "tax-policies":
		return c.TaxPolicies, true
	case "agencies":
		return c.Agencies, true
	case "threats":
		return c.Threats, true
	case "issues":
		return c.Issues, true
	case "industry":
		return c.Industrial, true
	case "construction":
		return c.Construction, true
	case "assets":
		return c.Assets, true
	}
	return nil, false
}
