package catalog

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/talgya/mayor-sim/internal/city"
)

func TestDefaultLoads(t *testing.T) {
	cat := Default()
	if len(cat.Projects) == 0 || len(cat.Events) == 0 || len(cat.Agencies) == 0 {
		t.Fatalf("embedded catalog missing tables: %d projects, %d events, %d agencies",
			len(cat.Projects), len(cat.Events), len(cat.Agencies))
	}
	if Default() != cat {
		t.Error("Default should return the same catalog on every call")
	}
}

func TestGreenZones(t *testing.T) {
	p, ok := Default().Project("green_zones")
	if !ok {
		t.Fatal("green_zones not found")
	}
	if p.Cost != 15_000_000 {
		t.Errorf("cost = %d, want 15000000", p.Cost)
	}
	if p.Category != city.CategoryEcology {
		t.Errorf("category = %q, want ecology", p.Category)
	}
}

func TestWasteCrisisIgnore(t *testing.T) {
	e, ok := Default().Event("waste_crisis_1")
	if !ok {
		t.Fatal("waste_crisis_1 not found")
	}
	opt, ok := e.Option("ignore_problem")
	if !ok {
		t.Fatal("ignore_problem option not found")
	}
	want := map[city.Stat]float64{
		city.StatEcology:     -10,
		city.StatHappiness:   -15,
		city.StatMayorRating: -8,
	}
	if len(opt.Effects) != len(want) {
		t.Fatalf("effects = %v, want %v", opt.Effects, want)
	}
	for k, v := range want {
		if opt.Effects[k] != v {
			t.Errorf("effect %s = %v, want %v", k, opt.Effects[k], v)
		}
	}
}

func TestEventLookupReturnsCopy(t *testing.T) {
	cat := Default()
	e, _ := cat.Event("waste_crisis_1")
	e.Options[0].Effects[city.StatEcology] = 999
	again, _ := cat.Event("waste_crisis_1")
	if again.Options[0].Effects[city.StatEcology] == 999 {
		t.Fatal("mutating a looked-up event changed the catalog")
	}
}

func TestMissingLookups(t *testing.T) {
	cat := Default()
	if _, ok := cat.Project("nope"); ok {
		t.Error("unknown project found")
	}
	if _, ok := cat.Opportunity("nope"); ok {
		t.Error("unknown opportunity found")
	}
	if _, ok := cat.Table("nope"); ok {
		t.Error("unknown table found")
	}
	for _, k := range Kinds {
		if _, ok := cat.Table(k); !ok {
			t.Errorf("table %q not served", k)
		}
	}
}

func TestSeasonalEventsCoverYear(t *testing.T) {
	seasons := map[city.Season]bool{}
	for _, e := range Default().Events {
		if e.SeasonalTrigger != "" {
			seasons[e.SeasonalTrigger] = true
		}
	}
	for _, s := range []city.Season{city.SeasonWinter, city.SeasonSpring, city.SeasonSummer, city.SeasonAutumn} {
		if !seasons[s] {
			t.Errorf("no event for season %s", s)
		}
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "duplicate project",
			doc: `projects:
  - {id: a, title: A, duration: 10}
  - {id: a, title: B, duration: 10}
`,
			want: "duplicate",
		},
		{
			name: "unknown stat",
			doc: `projects:
  - id: a
    duration: 10
    effects: {charisma: 5}
`,
			want: "unknown stat",
		},
		{
			name: "zero loan term",
			doc: `loan_offers:
  - {id: l, term_months: 0}
`,
			want: "term must be positive",
		},
		{
			name: "event without options",
			doc: `events:
  - {id: e, title: E}
`,
			want: "no options",
		},
		{
			name: "malformed yaml",
			doc:  "projects: [",
			want: "parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"data/x.yaml": {Data: []byte(tt.doc)}}
			_, err := Load(fsys)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadMergesDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"data/a.yaml": {Data: []byte("projects:\n  - {id: p1, duration: 5}\n")},
		"data/b.yaml": {Data: []byte("assets:\n  - {id: car, price: 10}\n")},
	}
	cat, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := cat.Project("p1"); !ok {
		t.Error("p1 missing after merge")
	}
	if a, ok := cat.Asset("car"); !ok || a.Price != 10 {
		t.Errorf("car = %+v, %v", a, ok)
	}
}
