package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boyter/titfortat/internal/game"
)

// ErrUnknownStrategy is returned when an ID is not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Registry is an ordered set of strategies keyed by ID.
type Registry struct {
	order []game.Strategy
	byID  map[string]game.Strategy
}

// NewRegistry returns the built-in line-up in its usual order, with the
// stochastic bots drawing from rng.
func NewRegistry(rng Source) *Registry {
	r := &Registry{byID: map[string]game.Strategy{}}
	r.mustRegister(
		TitForTatBot{},
		CooperateBot{},
		DefectBot{},
		GrimTriggerBot{},
		PavlovBot{},
		NewGenerousTitForTatBot(rng),
		RandomBot{Rand: rng},
	)
	return r
}

// AddExtras appends the strategies outside the usual line-up.
func (r *Registry) AddExtras(rng Source) {
	r.mustRegister(
		TitForTatBotReverse{},
		RandomDefectBot{Rand: rng},
		OftenRandomDefectBot{Rand: rng},
	)
}

// mustRegister panics on a duplicate ID; only fixed line-ups go through it.
func (r *Registry) mustRegister(strategies ...game.Strategy) {
	for _, s := range strategies {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Register appends s. IDs must be unique.
func (r *Registry) Register(s game.Strategy) error {
	if _, ok := r.byID[s.ID()]; ok {
		return fmt.Errorf("strategy %q already registered", s.ID())
	}
	r.byID[s.ID()] = s
	r.order = append(r.order, s)
	return nil
}

// All returns every registered strategy in registration order.
func (r *Registry) All() []game.Strategy {
	out := make([]game.Strategy, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup finds a strategy by ID.
func (r *Registry) Lookup(id string) (game.Strategy, error) {
	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return s, nil
}

// Select returns the strategies for ids in the order given. An empty list
// selects everything.
func (r *Registry) Select(ids []string) ([]game.Strategy, error) {
	if len(ids) == 0 {
		return r.All(), nil
	}
	out := make([]game.Strategy, 0, len(ids))
	for _, id := range ids {
		s, err := r.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
