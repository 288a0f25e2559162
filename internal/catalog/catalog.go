// Package catalog holds the read-only reference tables the engine looks
// entries up in: projects, investment opportunities, bank offers, tax
// policies, agencies, threats, citizen issues, programmes, assets and events.
// The tables ship as YAML documents embedded in the binary.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mayor-sim/internal/city"
)

//go:embed data/*.yaml
var embedded embed.FS

// Catalog is the full set of reference tables.
type Catalog struct {
	Projects      []ProjectDef     `yaml:"projects" json:"projects"`
	Events        []city.Event     `yaml:"events" json:"events"`
	Opportunities []Opportunity    `yaml:"opportunities" json:"opportunities"`
	LoanOffers    []LoanOffer      `yaml:"loan_offers" json:"loanOffers"`
	DepositOffers []DepositOffer   `yaml:"deposit_offers" json:"depositOffers"`
	TaxPolicies   []TaxPolicy      `yaml:"tax_policies" json:"taxPolicies"`
	Agencies      []AgencyDef      `yaml:"agencies" json:"agencies"`
	Threats       []ThreatTemplate `yaml:"threats" json:"threats"`
	Issues        []IssueTemplate  `yaml:"issues" json:"issues"`
	Industrial    []ProgramDef     `yaml:"industrial_projects" json:"industrialProjects"`
	Construction  []ProgramDef     `yaml:"construction_projects" json:"constructionProjects"`
	Assets        []AssetDef       `yaml:"assets" json:"assets"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. The embedded documents are part of
// the build, so a parse failure is a programming error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		defaultCat = cat
	})
	return defaultCat
}

// Load reads every data/*.yaml document in fsys and merges them into one
// catalog. Each document contributes whichever top-level tables it names.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalog: %w", err)
	}
	cat := &Catalog{}
	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var doc Catalog
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		cat.merge(&doc)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) merge(o *Catalog) {
	c.Projects = append(c.Projects, o.Projects...)
	c.Events = append(c.Events, o.Events...)
	c.Opportunities = append(c.Opportunities, o.Opportunities...)
	c.LoanOffers = append(c.LoanOffers, o.LoanOffers...)
	c.DepositOffers = append(c.DepositOffers, o.DepositOffers...)
	c.TaxPolicies = append(c.TaxPolicies, o.TaxPolicies...)
	c.Agencies = append(c.Agencies, o.Agencies...)
	c.Threats = append(c.Threats, o.Threats...)
	c.Issues = append(c.Issues, o.Issues...)
	c.Industrial = append(c.Industrial, o.Industrial...)
	c.Construction = append(c.Construction, o.Construction...)
	c.Assets = append(c.Assets, o.Assets...)
}

// Validate rejects duplicate ids, unknown stat keys and non-positive terms.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	check := func(kind, id string) error {
		key := kind + "/" + id
		if id == "" {
			return fmt.Errorf("%s: empty id", kind)
		}
		if seen[key] {
			return fmt.Errorf("%s: duplicate id %q", kind, id)
		}
		seen[key] = true
		return nil
	}
	stats := func(kind, id string, m map[city.Stat]float64) error {
		for s := range m {
			if !s.Known() {
				return fmt.Errorf("%s %q: unknown stat %q", kind, id, s)
			}
		}
		return nil
	}

	for _, p := range c.Projects {
		if err := check("project", p.ID); err != nil {
			return err
		}
		if p.Duration <= 0 {
			return fmt.Errorf("project %q: duration must be positive", p.ID)
		}
		if err := stats("project", p.ID, p.Effects); err != nil {
			return err
		}
	}
	for _, e := range c.Events {
		if err := check("event", e.ID); err != nil {
			return err
		}
		if len(e.Options) == 0 {
			return fmt.Errorf("event %q: no options", e.ID)
		}
		for _, o := range e.Options {
			if err := stats("event", e.ID+"/"+o.ID, o.Effects); err != nil {
				return err
			}
		}
	}
	for _, o := range c.Opportunities {
		if err := check("opportunity", o.ID); err != nil {
			return err
		}
		if o.Duration <= 0 {
			return fmt.Errorf("opportunity %q: duration must be positive", o.ID)
		}
	}
	for _, l := range c.LoanOffers {
		if err := check("loan", l.ID); err != nil {
			return err
		}
		if l.TermMonths <= 0 {
			return fmt.Errorf("loan %q: term must be positive", l.ID)
		}
	}
	for _, d := range c.DepositOffers {
		if err := check("deposit", d.ID); err != nil {
			return err
		}
		if d.TermMonths <= 0 {
			return fmt.Errorf("deposit %q: term must be positive", d.ID)
		}
	}
	for _, t := range c.TaxPolicies {
		if err := check("tax_policy", t.ID); err != nil {
			return err
		}
	}
	for _, a := range c.Agencies {
		if err := check("agency", a.ID); err != nil {
			return err
		}
	}
	for _, i := range c.Issues {
		if err := check("issue", i.ID); err != nil {
			return err
		}
	}
	for _, p := range c.Industrial {
		if err := check("industrial", p.ID); err != nil {
			return err
		}
		if p.Duration <= 0 {
			return fmt.Errorf("industrial %q: duration must be positive", p.ID)
		}
	}
	for _, p := range c.Construction {
		if err := check("construction", p.ID); err != nil {
			return err
		}
		if p.Duration <= 0 {
			return fmt.Errorf("construction %q: duration must be positive", p.ID)
		}
	}
	for _, a := range c.Assets {
		if err := check("asset", a.ID); err != nil {
			return err
		}
	}
	return nil
}
