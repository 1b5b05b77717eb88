package game

import "sort"

// TournamentResult is the outcome of one pairing in a round robin.
type TournamentResult struct {
	Strategy1      string  `json:"strategy1"`
	Strategy2      string  `json:"strategy2"`
	Strategy1Score float64 `json:"strategy1Score"`
	Strategy2Score float64 `json:"strategy2Score"`
	Rounds         int     `json:"rounds"`
}

// Winner names the higher scoring strategy of the pairing, or "Tie".
func (t TournamentResult) Winner() string {
	return winner(t.Strategy1, t.Strategy2, t.Strategy1Score, t.Strategy2Score)
}

// RunTournament plays every unordered pair of strategies exactly once.
// The strategy listed earlier always takes the player 1 seat.
func (e *Engine) RunTournament(strategies []Strategy, roundsPerMatch int) []TournamentResult {
	n := len(strategies)
	results := make([]TournamentResult, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			game := e.PlayGame(strategies[i], strategies[j], roundsPerMatch)
			results = append(results, TournamentResult{
				Strategy1:      strategies[i].Name(),
				Strategy2:      strategies[j].Name(),
				Strategy1Score: game.Player1FinalScore,
				Strategy2Score: game.Player2FinalScore,
				Rounds:         roundsPerMatch,
			})
		}
	}

	return results
}

// Standings maps a strategy name to its total score across a tournament.
type Standings map[string]float64

// Standing is one row of a sorted standings table.
type Standing struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// CalculateStandings sums the score each strategy earned in every pairing
// it played, from either seat.
func CalculateStandings(results []TournamentResult) Standings {
	standings := Standings{}
	for _, r := range results {
		standings[r.Strategy1] += r.Strategy1Score
		standings[r.Strategy2] += r.Strategy2Score
	}
	return standings
}

// Sorted returns the standings highest score first. Equal scores are
// ordered by name so output is stable.
func (s Standings) Sorted() []Standing {
	rows := make([]Standing, 0, len(s))
	for name, score := range s {
		rows = append(rows, Standing{Name: name, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
