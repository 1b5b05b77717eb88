package report

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/boyter/titfortat/internal/analysis"
	"github.com/boyter/titfortat/internal/bot"
	"github.com/boyter/titfortat/internal/game"
	"github.com/boyter/titfortat/internal/scenario"
)

func tariffWar(t *testing.T) scenario.Scenario {
	t.Helper()
	sc, err := scenario.Find(scenario.Presets(), "tariff-war")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	return sc
}

func TestGameReport(t *testing.T) {
	sc := tariffWar(t)
	engine := game.NewEngine(sc.PayoffMatrix)
	result := engine.PlayGame(bot.TitForTatBot{}, bot.DefectBot{}, 3)

	var buf bytes.Buffer
	if err := New(language.English).Game(&buf, sc, result); err != nil {
		t.Fatalf("game report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Tariff War", "Winner: Always Defect", "Free Trade", "Impose Tariffs", "Round"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines < 3+5 {
		t.Fatalf("expected a row per round, got %d lines:\n%s", lines, out)
	}
}

func TestTournamentReport(t *testing.T) {
	sc := tariffWar(t)
	engine := game.NewEngine(sc.PayoffMatrix)
	results := engine.RunTournament([]game.Strategy{bot.TitForTatBot{}, bot.DefectBot{}, bot.CooperateBot{}}, 5)

	var buf bytes.Buffer
	if err := New(language.English).Tournament(&buf, sc, results); err != nil {
		t.Fatalf("tournament report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "#1") || !strings.Contains(out, "Detailed Match Results") {
		t.Fatalf("unexpected report:\n%s", out)
	}
	first := strings.Index(out, "#1")
	if !strings.HasPrefix(strings.TrimSpace(out[first+2:]), "Always Defect") {
		t.Fatalf("expected Always Defect to lead:\n%s", out)
	}
	if !strings.Contains(out, game.Tie) {
		t.Fatalf("expected a tied pairing:\n%s", out)
	}
}

func TestListings(t *testing.T) {
	w := New(language.English)

	var buf bytes.Buffer
	if err := w.Strategies(&buf, bot.NewRegistry(bot.NewSource(1)).All()); err != nil {
		t.Fatalf("strategies: %v", err)
	}
	if !strings.Contains(buf.String(), "generous-tit-for-tat") {
		t.Fatalf("missing strategy:\n%s", buf.String())
	}

	buf.Reset()
	if err := w.Scenarios(&buf, scenario.Presets()); err != nil {
		t.Fatalf("scenarios: %v", err)
	}
	if strings.Count(buf.String(), "\n") != len(scenario.Presets()) {
		t.Fatalf("expected one line per scenario:\n%s", buf.String())
	}
	for _, want := range []string{
		"Nash: Both Defect (mutual defection is stable)",
		"Nash: Mixed or no pure strategy Nash equilibrium",
		"Best: Both Cooperate (total: 8)",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("scenarios missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	summary := analysis.Summary{
		Name: "Pavlov", Mean: 10, Min: 9, Max: 11, StdDev: 1.4142,
		Record: analysis.Record{Wins: 3, Losses: 1, Draws: 4},
	}
	if err := w.Summaries(&buf, 2, []analysis.Summary{summary}); err != nil {
		t.Fatalf("summaries: %v", err)
	}
	for _, want := range []string{"Pavlov", "1.41", "W/L/D", "3/1/4", "37.5%"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("summary missing %q:\n%s", want, buf.String())
		}
	}
}
