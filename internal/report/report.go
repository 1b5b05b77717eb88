// Package report renders results as plain text tables for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/boyter/titfortat/internal/analysis"
	"github.com/boyter/titfortat/internal/game"
	"github.com/boyter/titfortat/internal/scenario"
)

// Writer formats numbers for one locale.
type Writer struct {
	p *message.Printer
}

// New returns a Writer for tag.
func New(tag language.Tag) *Writer {
	return &Writer{p: message.NewPrinter(tag)}
}

func (w *Writer) table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// Game writes the final scores, the winner and every round using the
// scenario's action labels.
func (w *Writer) Game(out io.Writer, sc scenario.Scenario, result game.GameResult) error {
	w.p.Fprintf(out, "Game Results (%s)\n\n", sc.Name)
	w.p.Fprintf(out, "%s: %v\n", result.Player1Strategy, result.Player1FinalScore)
	w.p.Fprintf(out, "%s: %v\n", result.Player2Strategy, result.Player2FinalScore)
	w.p.Fprintf(out, "Winner: %s\n\n", result.Winner())

	tw := w.table(out)
	fmt.Fprintf(tw, "Round\t%s\t%s\tPayoffs\tTotal Scores\n", result.Player1Strategy, result.Player2Strategy)
	for _, r := range result.Rounds {
		w.p.Fprintf(tw, "%d\t%s\t%s\t%v, %v\t%v, %v\n",
			r.Round,
			sc.Label(r.Player1Action),
			sc.Label(r.Player2Action),
			r.Player1Payoff, r.Player2Payoff,
			r.Player1TotalScore, r.Player2TotalScore,
		)
	}
	return tw.Flush()
}

// Tournament writes the ranked standings followed by every pairing.
func (w *Writer) Tournament(out io.Writer, sc scenario.Scenario, results []game.TournamentResult) error {
	w.p.Fprintf(out, "Tournament Results (%s)\n", sc.Name)
	w.p.Fprintf(out, "Each strategy played against every other strategy.\n\n")

	tw := w.table(out)
	for i, s := range game.CalculateStandings(results).Sorted() {
		w.p.Fprintf(tw, "#%d\t%s\t%v\n", i+1, s.Name, s.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nDetailed Match Results\n\n")
	tw = w.table(out)
	fmt.Fprintf(tw, "Strategy 1\tStrategy 2\tScore 1\tScore 2\tWinner\n")
	for _, r := range results {
		w.p.Fprintf(tw, "%s\t%s\t%v\t%v\t%s\n", r.Strategy1, r.Strategy2, r.Strategy1Score, r.Strategy2Score, r.Winner())
	}
	return tw.Flush()
}

// Summaries writes repeated-tournament statistics.
func (w *Writer) Summaries(out io.Writer, runs int, summaries []analysis.Summary) error {
	w.p.Fprintf(out, "\nAcross %d tournaments\n\n", runs)
	tw := w.table(out)
	fmt.Fprintf(tw, "Strategy\tMean\tStd Dev\tMin\tMax\tW/L/D\tWin %%\n")
	for _, s := range summaries {
		w.p.Fprintf(tw, "%s\t%.2f\t%.2f\t%v\t%v\t%d/%d/%d\t%.1f%%\n",
			s.Name, s.Mean, s.StdDev, s.Min, s.Max, s.Wins, s.Losses, s.Draws, s.WinRate())
	}
	return tw.Flush()
}

// Strategies lists the available strategies.
func (w *Writer) Strategies(out io.Writer, strategies []game.Strategy) error {
	tw := w.table(out)
	for _, s := range strategies {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID(), s.Name(), s.Description())
	}
	return tw.Flush()
}

// Scenarios lists scenarios with their payoff matrices, the pure Nash
// equilibrium and the outcome with the highest combined payoff.
func (w *Writer) Scenarios(out io.Writer, scenarios []scenario.Scenario) error {
	tw := w.table(out)
	for _, s := range scenarios {
		m := s.PayoffMatrix
		best := m.BestOutcome()
		w.p.Fprintf(tw, "%s\t%s\tCC %v\tCD %v\tDC %v\tDD %v\tNash: %s\tBest: %s (total: %v)\n",
			s.ID, s.Name, m.BothCooperate, m.CooperateDefect, m.DefectCooperate, m.BothDefect,
			m.NashEquilibrium(), best.Name, best.Total)
	}
	return tw.Flush()
}
