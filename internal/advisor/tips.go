package advisor

import (
	"github.com/talgya/mayor-sim/internal/city"
	"github.com/talgya/mayor-sim/internal/ledger"
)

// Thresholds that trigger a hint.
const (
	lowBudget          = 10 * ledger.Million
	lowGauge           = 40.0
	lowRating          = 30.0
	highUnemployment   = 10.0
	highInvestigation  = 50.0
	highMediaAttention = 70.0
)

type tip struct {
	when func(g *city.GameState) bool
	text string
}

// tips are checked in order; more urgent ones come first.
var tips = []tip{
	{func(g *city.GameState) bool { return g.PendingEvent != nil }, "Требуется ваше решение по текущему событию."},
	{func(g *city.GameState) bool { return g.MayorRating < lowRating }, "Рейтинг падает: при 10% вас отстранят от должности."},
	{func(g *city.GameState) bool { return g.Finance.CityBudget.Arrears > 0 }, "У города есть просроченные обязательства. Сократите расходы."},
	{func(g *city.GameState) bool { return g.Budget < lowBudget }, "Бюджет почти исчерпан. Отложите новые проекты."},
	{func(g *city.GameState) bool { return overdueLoans(g) > 0 }, "Есть просроченные кредиты: это привлекает проверяющих."},
	{func(g *city.GameState) bool { return g.Security.Metrics.InvestigationProbability > highInvestigation }, "Высокий риск расследования. Будьте осторожны."},
	{func(g *city.GameState) bool { return g.Happiness < lowGauge }, "Жители недовольны. Займитесь социальными проектами."},
	{func(g *city.GameState) bool { return g.Ecology < lowGauge }, "Экология ухудшается. Подумайте о зелёных проектах."},
	{func(g *city.GameState) bool { return g.Infrastructure < lowGauge }, "Инфраструктура изношена. Нужен ремонт дорог и сетей."},
	{func(g *city.GameState) bool { return g.Unemployment > highUnemployment }, "Растёт безработица. Поддержите промышленность."},
	{func(g *city.GameState) bool { return g.MediaAttention > highMediaAttention }, "Пресса пристально следит за вами."},
	{func(g *city.GameState) bool { return len(g.Citizens.ActiveIssues) >= city.ActiveIssuesCap/2 }, "Накопились обращения граждан. Ответьте на них."},
	{func(g *city.GameState) bool { return g.InProgressCount() >= city.MaxActiveProjects }, "Достигнут лимит одновременных проектов."},
}

// Tips lists the hints whose conditions hold, most urgent first. A finished
// game has none.
func Tips(g *city.GameState) []string {
	out := []string{}
	if g.GameOver {
		return out
	}
	for _, t := range tips {
		if t.when(g) {
			out = append(out, t.text)
		}
	}
	return out
}

func overdueLoans(g *city.GameState) int {
	n := 0
	for _, l := range g.Banking.Loans {
		if l.Status == city.LoanOverdue {
			n++
		}
	}
	return n
}
