// Package scenario provides named payoff matrices and the words used for
// cooperating and defecting in each one.
package scenario

import (
	"errors"
	"fmt"

	"github.com/boyter/titfortat/internal/game"
)

// ErrNotFound is returned when no scenario has the requested ID.
var ErrNotFound = errors.New("scenario not found")

// Scenario is a payoff matrix with a story attached.
type Scenario struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	CooperateLabel string            `json:"cooperateLabel" yaml:"cooperate_label"`
	DefectLabel    string            `json:"defectLabel" yaml:"defect_label"`
	PayoffMatrix   game.PayoffMatrix `json:"payoffMatrix" yaml:"payoff_matrix"`
	RealWorld      bool              `json:"realWorld,omitempty" yaml:"real_world"`
	Countries      []string          `json:"countries,omitempty" yaml:"countries"`
}

// Label returns the scenario's word for an action.
func (s Scenario) Label(a game.Action) string {
	if a == game.Cooperate {
		if s.CooperateLabel != "" {
			return s.CooperateLabel
		}
	} else if s.DefectLabel != "" {
		return s.DefectLabel
	}
	return a.String()
}

// TariffWar is a trade war where tariffs hurt both countries.
var TariffWar = game.PayoffMatrix{
	BothCooperate:   [2]float64{3, 3},
	CooperateDefect: [2]float64{0, 4},
	DefectCooperate: [2]float64{4, 0},
	BothDefect:      [2]float64{1, 1},
}

// Climate punishes mutual defection harder than being exploited.
var Climate = game.PayoffMatrix{
	BothCooperate:   [2]float64{4, 4},
	CooperateDefect: [2]float64{0, 5},
	DefectCooperate: [2]float64{5, 0},
	BothDefect:      [2]float64{-2, -2},
}

// Presets returns the built-in scenarios, default first.
func Presets() []Scenario {
	return []Scenario{
		{
			ID:             "tariff-war",
			Name:           "Tariff War",
			Description:    "Trade war where tariffs hurt both countries. Shows the self-destructive nature of protectionism.",
			CooperateLabel: "Free Trade",
			DefectLabel:    "Impose Tariffs",
			PayoffMatrix:   TariffWar,
		},
		{
			ID:             "prisoners-dilemma",
			Name:           "Classic Prisoner's Dilemma",
			Description:    "The original scenario that started it all.",
			CooperateLabel: "Stay Silent",
			DefectLabel:    "Betray",
			PayoffMatrix:   game.ClassicMatrix,
		},
		{
			ID:             "climate",
			Name:           "Climate Cooperation",
			Description:    "Countries deciding whether to reduce emissions or free-ride.",
			CooperateLabel: "Reduce Emissions",
			DefectLabel:    "Pollute",
			PayoffMatrix:   Climate,
		},
		{
			ID:             "usa-china",
			Name:           "USA vs China",
			Description:    "2025 trade war: tariffs on imports creating lose-lose outcome for both economies.",
			CooperateLabel: "Free Trade",
			DefectLabel:    "Impose Tariffs",
			PayoffMatrix:   TariffWar,
			RealWorld:      true,
			Countries:      []string{"USA", "China"},
		},
		{
			ID:             "usa-switzerland",
			Name:           "USA vs Switzerland",
			Description:    "Small neutral country facing US tariff threats. Should Switzerland retaliate or stay cooperative?",
			CooperateLabel: "Free Trade",
			DefectLabel:    "Impose Tariffs",
			PayoffMatrix: game.PayoffMatrix{
				BothCooperate:   [2]float64{3, 3},
				CooperateDefect: [2]float64{0, 2},
				DefectCooperate: [2]float64{2, 0},
				BothDefect:      [2]float64{1, 0.5},
			},
			RealWorld: true,
			Countries: []string{"USA", "Switzerland"},
		},
	}
}

// Find returns the scenario with id from list.
func Find(list []Scenario, id string) (Scenario, error) {
	for _, s := range list {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}
