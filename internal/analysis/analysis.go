// Package analysis summarises repeated tournaments. A single round robin
// says little when the line-up includes stochastic strategies.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/boyter/titfortat/internal/game"
)

// Record counts pairings won, lost and drawn.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Games is the number of pairings in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Draws
}

// WinRate is the percentage of pairings won, 0 with no games.
func (r Record) WinRate() float64 {
	if r.Games() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games()) * 100
}

// Summary describes one strategy's tournament totals over many runs.
type Summary struct {
	Name   string    `json:"name"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stdDev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Totals []float64 `json:"totals"`
	Record
}

// Tally adds the outcome of every pairing in results to records.
func Tally(records map[string]Record, results []game.TournamentResult) {
	for _, r := range results {
		a, b := records[r.Strategy1], records[r.Strategy2]
		switch r.Winner() {
		case game.Tie:
			a.Draws++
			b.Draws++
		case r.Strategy1:
			a.Wins++
			b.Losses++
		default:
			a.Losses++
			b.Wins++
		}
		records[r.Strategy1], records[r.Strategy2] = a, b
	}
}

// Repeat runs the round robin runs times and summarises each strategy's
// standings total and win/loss/draw record. Summaries come back highest
// mean first.
func Repeat(engine *game.Engine, strategies []game.Strategy, roundsPerMatch, runs int) []Summary {
	totals := map[string][]float64{}
	records := map[string]Record{}
	for i := 0; i < runs; i++ {
		results := engine.RunTournament(strategies, roundsPerMatch)
		for name, score := range game.CalculateStandings(results) {
			totals[name] = append(totals[name], score)
		}
		Tally(records, results)
	}

	summaries := Summarise(totals)
	for i := range summaries {
		summaries[i].Record = records[summaries[i].Name]
	}
	return summaries
}

// Summarise reduces per-run totals to summary statistics.
func Summarise(totals map[string][]float64) []Summary {
	out := make([]Summary, 0, len(totals))
	for name, xs := range totals {
		if len(xs) == 0 {
			continue
		}
		s := Summary{
			Name:   name,
			Min:    floats.Min(xs),
			Max:    floats.Max(xs),
			Totals: xs,
		}
		if len(xs) == 1 {
			s.Mean = xs[0]
		} else {
			s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Name < out[j].Name
	})
	return out
}
