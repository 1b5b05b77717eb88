package analysis

import (
	"math"
	"testing"

	"github.com/boyter/titfortat/internal/bot"
	"github.com/boyter/titfortat/internal/game"
)

func TestSummarise(t *testing.T) {
	got := Summarise(map[string][]float64{
		"steady": {10, 10, 10},
		"noisy":  {2, 4, 6, 8},
		"single": {7},
		"empty":  nil,
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	if got[0].Name != "steady" || got[1].Name != "single" || got[2].Name != "noisy" {
		t.Fatalf("unexpected order %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
	}

	steady := got[0]
	if steady.Mean != 10 || steady.StdDev != 0 || steady.Min != 10 || steady.Max != 10 {
		t.Fatalf("steady = %+v", steady)
	}
	noisy := got[2]
	if noisy.Mean != 5 || noisy.Min != 2 || noisy.Max != 8 {
		t.Fatalf("noisy = %+v", noisy)
	}
	// sample standard deviation of 2,4,6,8
	if want := math.Sqrt(20.0 / 3.0); math.Abs(noisy.StdDev-want) > 1e-9 {
		t.Fatalf("noisy std dev = %v, want %v", noisy.StdDev, want)
	}
	if got[1].StdDev != 0 {
		t.Fatalf("single run std dev = %v", got[1].StdDev)
	}
}

func TestRepeatDeterministicLineUp(t *testing.T) {
	engine := game.NewEngine(game.ClassicMatrix)
	line := []game.Strategy{bot.TitForTatBot{}, bot.DefectBot{}, bot.CooperateBot{}}

	got := Repeat(engine, line, 5, 4)
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	want := map[string]float64{"Always Defect": 34, "Tit for Tat": 19, "Always Cooperate": 15}
	for _, s := range got {
		if s.Mean != want[s.Name] || s.StdDev != 0 {
			t.Fatalf("%s = %+v, want mean %v", s.Name, s, want[s.Name])
		}
		if len(s.Totals) != 4 {
			t.Fatalf("%s has %d totals", s.Name, len(s.Totals))
		}
	}
	if got[0].Name != "Always Defect" {
		t.Fatalf("leader = %s", got[0].Name)
	}

	records := map[string]Record{
		"Always Defect":    {Wins: 8},
		"Tit for Tat":      {Losses: 4, Draws: 4},
		"Always Cooperate": {Losses: 4, Draws: 4},
	}
	for _, s := range got {
		if s.Record != records[s.Name] {
			t.Fatalf("%s record = %+v, want %+v", s.Name, s.Record, records[s.Name])
		}
	}
}

func TestTally(t *testing.T) {
	records := map[string]Record{}
	Tally(records, []game.TournamentResult{
		{Strategy1: "a", Strategy2: "b", Strategy1Score: 9, Strategy2Score: 4},
		{Strategy1: "a", Strategy2: "c", Strategy1Score: 2, Strategy2Score: 2},
		{Strategy1: "b", Strategy2: "c", Strategy1Score: 1, Strategy2Score: 6},
	})

	want := map[string]Record{
		"a": {Wins: 1, Draws: 1},
		"b": {Losses: 2},
		"c": {Wins: 1, Draws: 1},
	}
	for name, rec := range want {
		if records[name] != rec {
			t.Fatalf("%s = %+v, want %+v", name, records[name], rec)
		}
	}
}

func TestRecordWinRate(t *testing.T) {
	cases := []struct {
		rec  Record
		want float64
	}{
		{Record{}, 0},
		{Record{Wins: 1, Losses: 1, Draws: 2}, 25},
		{Record{Wins: 3}, 100},
	}
	for _, c := range cases {
		if got := c.rec.WinRate(); got != c.want {
			t.Fatalf("%+v win rate = %v, want %v", c.rec, got, c.want)
		}
	}
}

func TestRepeatZeroRuns(t *testing.T) {
	engine := game.NewEngine(game.ClassicMatrix)
	if got := Repeat(engine, bot.NewRegistry(bot.NewSource(1)).All(), 5, 0); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}
