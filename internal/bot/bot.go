// Package bot holds the built-in strategies that play the iterated game.
package bot

import (
	"github.com/boyter/titfortat/internal/game"
)

// lastRound returns the most recent round, or false before round 1.
func lastRound(history []game.RoundResult) (game.RoundResult, bool) {
	if len(history) == 0 {
		return game.RoundResult{}, false
	}
	return history[len(history)-1], true
}

type CooperateBot struct{}

func (CooperateBot) ID() string          { return "always-cooperate" }
func (CooperateBot) Name() string        { return "Always Cooperate" }
func (CooperateBot) Description() string { return "Always chooses to cooperate (free trade)" }

func (CooperateBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	return game.Cooperate
}

type DefectBot struct{}

func (DefectBot) ID() string          { return "always-defect" }
func (DefectBot) Name() string        { return "Always Defect" }
func (DefectBot) Description() string { return "Always imposes tariffs (protectionism)" }

func (DefectBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	return game.Defect
}

type TitForTatBot struct{}

func (TitForTatBot) ID() string   { return "tit-for-tat" }
func (TitForTatBot) Name() string { return "Tit for Tat" }
func (TitForTatBot) Description() string {
	return "Start with cooperation, then copy opponent's last move"
}

func (TitForTatBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	last, ok := lastRound(history)
	if !ok {
		return game.Cooperate
	}
	return last.Opponent(seat)
}

type GrimTriggerBot struct{}

func (GrimTriggerBot) ID() string   { return "grim-trigger" }
func (GrimTriggerBot) Name() string { return "Grim Trigger" }
func (GrimTriggerBot) Description() string {
	return "Cooperate until opponent defects once, then defect forever"
}

func (GrimTriggerBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	// one defection anywhere in the past is enough
	for _, round := range history {
		if round.Opponent(seat) == game.Defect {
			return game.Defect
		}
	}
	return game.Cooperate
}

// PavlovBot is win-stay, lose-shift.
type PavlovBot struct{}

func (PavlovBot) ID() string   { return "pavlov" }
func (PavlovBot) Name() string { return "Pavlov" }
func (PavlovBot) Description() string {
	return "If last round was good, repeat; if bad, switch"
}

func (PavlovBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	last, ok := lastRound(history)
	if !ok {
		return game.Cooperate
	}

	mine := last.Own(seat)
	if mine == last.Opponent(seat) {
		return mine
	}
	return mine.Opposite()
}

// GenerousTitForTatBot mirrors the opponent but forgives a defection with
// probability Forgiveness.
type GenerousTitForTatBot struct {
	Rand        Source
	Forgiveness float64
}

// DefaultForgiveness is the chance a defection goes unpunished.
const DefaultForgiveness = 0.3

func NewGenerousTitForTatBot(rng Source) GenerousTitForTatBot {
	return GenerousTitForTatBot{Rand: rng, Forgiveness: DefaultForgiveness}
}

func (GenerousTitForTatBot) ID() string   { return "generous-tit-for-tat" }
func (GenerousTitForTatBot) Name() string { return "Generous Tit for Tat" }
func (GenerousTitForTatBot) Description() string {
	return "Like Tit for Tat, but sometimes forgives defection (30% chance)"
}

func (r GenerousTitForTatBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	last, ok := lastRound(history)
	if !ok {
		return game.Cooperate
	}

	opponent := last.Opponent(seat)
	if opponent == game.Defect && r.Rand.Float64() < r.Forgiveness {
		return game.Cooperate
	}
	return opponent
}

type RandomBot struct {
	Rand Source
}

func (RandomBot) ID() string          { return "random" }
func (RandomBot) Name() string        { return "Random" }
func (RandomBot) Description() string { return "Randomly cooperate or defect (50/50)" }

func (r RandomBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	if r.Rand.Float64() < 0.5 {
		return game.Cooperate
	}
	return game.Defect
}

// TitForTatBotReverse does the opposite of what the opponent did last.
type TitForTatBotReverse struct{}

func (TitForTatBotReverse) ID() string   { return "reverse-tit-for-tat" }
func (TitForTatBotReverse) Name() string { return "Reverse Tit for Tat" }
func (TitForTatBotReverse) Description() string {
	return "Open with defection, then play the opposite of opponent's last move"
}

func (TitForTatBotReverse) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	last, ok := lastRound(history)
	if !ok {
		return game.Defect
	}
	return last.Opponent(seat).Opposite()
}

// RandomDefectBot cooperates but defects one round in ten.
type RandomDefectBot struct {
	Rand Source
}

func (RandomDefectBot) ID() string          { return "random-defect" }
func (RandomDefectBot) Name() string        { return "Random Defect" }
func (RandomDefectBot) Description() string { return "Cooperate, but defect at random (10% chance)" }

func (r RandomDefectBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	return defectWithChance(r.Rand, 0.1)
}

// OftenRandomDefectBot cooperates but defects one round in three.
type OftenRandomDefectBot struct {
	Rand Source
}

func (OftenRandomDefectBot) ID() string   { return "often-random-defect" }
func (OftenRandomDefectBot) Name() string { return "Often Random Defect" }
func (OftenRandomDefectBot) Description() string {
	return "Cooperate, but defect at random (33% chance)"
}

func (r OftenRandomDefectBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	return defectWithChance(r.Rand, 1.0/3.0)
}

func defectWithChance(rng Source, p float64) game.Action {
	if rng.Float64() < p {
		return game.Defect
	}
	return game.Cooperate
}
