package game

import "sync"

// Strategy decides the next action from everything played so far.
//
// history holds rounds 1..i-1 oldest first when round i is being decided
// and must not be modified. Implementations must not keep state between
// calls beyond what they can rebuild from history.
type Strategy interface {
	ID() string
	Name() string
	Description() string
	Decision(history []RoundResult, seat Seat) Action
}

// RoundResult is one played round. Totals are cumulative through this round.
type RoundResult struct {
	Round             int     `json:"round"`
	Player1Action     Action  `json:"player1Action"`
	Player2Action     Action  `json:"player2Action"`
	Player1Payoff     float64 `json:"player1Payoff"`
	Player2Payoff     float64 `json:"player2Payoff"`
	Player1TotalScore float64 `json:"player1TotalScore"`
	Player2TotalScore float64 `json:"player2TotalScore"`
}

// Own returns the action taken by seat in this round.
func (r RoundResult) Own(seat Seat) Action {
	if seat == Player1 {
		return r.Player1Action
	}
	return r.Player2Action
}

// Opponent returns the action taken against seat in this round.
func (r RoundResult) Opponent(seat Seat) Action {
	return r.Own(seat.Other())
}

// GameResult is the outcome of one repeated game.
type GameResult struct {
	Rounds            []RoundResult `json:"rounds"`
	Player1FinalScore float64       `json:"player1FinalScore"`
	Player2FinalScore float64       `json:"player2FinalScore"`
	Player1Strategy   string        `json:"player1Strategy"`
	Player2Strategy   string        `json:"player2Strategy"`
}

// Winner names the higher scoring strategy, or "Tie".
func (g GameResult) Winner() string {
	return winner(g.Player1Strategy, g.Player2Strategy, g.Player1FinalScore, g.Player2FinalScore)
}

// Tie is the winner label used when both sides finish level.
const Tie = "Tie"

func winner(name1, name2 string, score1, score2 float64) string {
	switch {
	case score1 > score2:
		return name1
	case score2 > score1:
		return name2
	}
	return Tie
}

// Game is the running state of a single repeated game.
type Game struct {
	matrix  PayoffMatrix
	history []RoundResult
	AScore  float64
	BScore  float64
}

// CreateGame starts an empty game scored with matrix.
func CreateGame(matrix PayoffMatrix, capacity int) *Game {
	if capacity < 0 {
		capacity = 0
	}
	return &Game{
		matrix:  matrix,
		history: make([]RoundResult, 0, capacity),
	}
}

// History is the rounds played so far, oldest first.
func (g *Game) History() []RoundResult {
	n := len(g.history)
	return g.history[:n:n]
}

// Round is the number of rounds played so far.
func (g *Game) Round() int {
	return len(g.history)
}

// Play scores one round in which both actions were chosen simultaneously.
func (g *Game) Play(aChoice, bChoice Action) RoundResult {
	aPayoff, bPayoff := g.matrix.Lookup(aChoice, bChoice)
	g.AScore += aPayoff
	g.BScore += bPayoff

	result := RoundResult{
		Round:             len(g.history) + 1,
		Player1Action:     aChoice,
		Player2Action:     bChoice,
		Player1Payoff:     aPayoff,
		Player2Payoff:     bPayoff,
		Player1TotalScore: g.AScore,
		Player2TotalScore: g.BScore,
	}

	// keep what happened so we can feed it back next round
	g.history = append(g.history, result)
	return result
}

// Engine plays games and tournaments under the currently configured matrix.
// It is safe to replace the matrix while games run; a game in progress
// keeps the matrix it started with.
type Engine struct {
	mu     sync.RWMutex
	matrix PayoffMatrix

	// OnRound, when set, is called after every round is appended.
	OnRound func(p1, p2 Strategy, round RoundResult)
}

// NewEngine returns an engine scoring with matrix.
func NewEngine(matrix PayoffMatrix) *Engine {
	return &Engine{matrix: matrix}
}

// SetPayoffMatrix replaces the active matrix for all subsequent games.
func (e *Engine) SetPayoffMatrix(matrix PayoffMatrix) {
	e.mu.Lock()
	e.matrix = matrix
	e.mu.Unlock()
}

// PayoffMatrix returns the active matrix.
func (e *Engine) PayoffMatrix() PayoffMatrix {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matrix
}

// Payoff looks up the (player1, player2) payoff for the two actions.
func (e *Engine) Payoff(a1, a2 Action) (float64, float64) {
	return e.PayoffMatrix().Lookup(a1, a2)
}

// PlayGame plays numRounds rounds of s1 (player 1) against s2 (player 2).
// A non-positive numRounds yields no rounds and zero scores.
func (e *Engine) PlayGame(s1, s2 Strategy, numRounds int) GameResult {
	game := CreateGame(e.PayoffMatrix(), numRounds)

	for game.Round() < numRounds {
		// both sides see the same history, never the round being decided
		history := game.History()
		aChoice := s1.Decision(history, Player1)
		bChoice := s2.Decision(history, Player2)

		round := game.Play(aChoice, bChoice)
		if e.OnRound != nil {
			e.OnRound(s1, s2, round)
		}
	}

	return GameResult{
		Rounds:            game.History(),
		Player1FinalScore: game.AScore,
		Player2FinalScore: game.BScore,
		Player1Strategy:   s1.Name(),
		Player2Strategy:   s2.Name(),
	}
}
