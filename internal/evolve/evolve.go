// Package evolve breeds neural network strategies with NEAT. A network's
// fitness is how well it scores against a fixed line-up of opponents.
package evolve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/yaricom/goNEAT/v2/experiment"
	"github.com/yaricom/goNEAT/v2/neat"
	"github.com/yaricom/goNEAT/v2/neat/genetics"
	"github.com/yaricom/goNEAT/v2/neat/network"

	"github.com/boyter/titfortat/internal/bot"
	"github.com/boyter/titfortat/internal/game"
)

// ChampionName is the name the best evolved network plays under.
const ChampionName = "NEAT Champion"

// Evaluator scores every organism in a generation by playing its network
// against each opponent from the player 1 seat.
type Evaluator struct {
	Engine    *game.Engine
	Opponents []game.Strategy
	Rounds    int
	Logger    *log.Logger

	// ctx is the context of the running experiment, if any
	ctx context.Context

	mu          sync.Mutex
	best        *network.Network
	bestFitness float64
	generations int
}

// Fitness plays net against every opponent and maps the total player 1
// score onto [0, 1] using the matrix's worst and best single-round payoffs.
func (e *Evaluator) Fitness(net *network.Network) float64 {
	candidate := bot.NewNeuralNetworkBot(net, "candidate")

	var total float64
	for _, opponent := range e.Opponents {
		result := e.Engine.PlayGame(candidate, opponent, e.Rounds)
		total += result.Player1FinalScore
	}

	lo, hi := e.Engine.PayoffMatrix().Bounds()
	return normalise(total, lo, hi, e.Rounds*len(e.Opponents))
}

func normalise(total, lo, hi float64, rounds int) float64 {
	if rounds <= 0 || hi <= lo {
		return 1
	}
	span := (hi - lo) * float64(rounds)
	return (total - lo*float64(rounds)) / span
}

// GenerationEvaluate assigns fitness to the population and remembers the
// fittest network seen in any generation.
func (e *Evaluator) GenerationEvaluate(pop *genetics.Population, epoch *experiment.Generation, opts *neat.Options) (err error) {
	genBest := -1.0
	for _, org := range pop.Organisms {
		if e.ctx != nil {
			if err := e.ctx.Err(); err != nil {
				return err
			}
		}
		if org.Phenotype == nil {
			continue
		}
		org.Fitness = e.Fitness(org.Phenotype)

		if org.Fitness > genBest {
			genBest = org.Fitness
			epoch.Best = org
		}
		e.mu.Lock()
		if e.best == nil || org.Fitness > e.bestFitness {
			e.best = org.Phenotype
			e.bestFitness = org.Fitness
		}
		e.mu.Unlock()
	}

	e.mu.Lock()
	e.generations++
	gen := e.generations
	e.mu.Unlock()

	if e.Logger != nil {
		e.Logger.Printf("generation %d: organisms=%d best=%.4f", gen, len(pop.Organisms), genBest)
	}
	return nil
}

// Champion returns the fittest network so far as a playable strategy.
func (e *Evaluator) Champion() (*bot.NeuralNetworkBot, float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.best == nil {
		return nil, 0, false
	}
	return bot.NewNeuralNetworkBot(e.best, ChampionName), e.bestFitness, true
}

// LoadOptions reads NEAT options, YAML when the file says so and the
// plain key/value format otherwise.
func LoadOptions(path string) (*neat.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open neat options: %w", err)
	}
	defer f.Close()

	var opts *neat.Options
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		opts, err = neat.LoadYAMLOptions(f)
	default:
		opts, err = neat.LoadNeatOptions(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load neat options: %w", err)
	}
	return opts, nil
}

// LoadStartGenome reads the plain-encoded genome every population is
// spawned from. It must have the sensors and output a strategy network
// needs.
func LoadStartGenome(path string) (*genetics.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open start genome: %w", err)
	}
	defer f.Close()

	genome, err := genetics.ReadGenome(f, 1)
	if err != nil {
		return nil, fmt.Errorf("read start genome: %w", err)
	}

	var in, out int
	for _, n := range genome.Nodes {
		switch n.NeuronType {
		case network.InputNeuron, network.BiasNeuron:
			in++
		case network.OutputNeuron:
			out++
		}
	}
	if in != bot.NeuralInputs || out != bot.NeuralOutputs {
		return nil, fmt.Errorf("start genome has %d inputs and %d outputs, want %d and %d",
			in, out, bot.NeuralInputs, bot.NeuralOutputs)
	}
	return genome, nil
}

// Run evolves networks from start with opts and returns the champion.
func Run(ctx context.Context, opts *neat.Options, start *genetics.Genome, ev *Evaluator, seed int64) (*bot.NeuralNetworkBot, float64, error) {
	if opts == nil {
		return nil, 0, errors.New("neat options are required")
	}
	if start == nil {
		return nil, 0, errors.New("start genome is required")
	}
	if len(ev.Opponents) == 0 {
		return nil, 0, errors.New("at least one opponent is required")
	}

	exp := experiment.Experiment{
		Id:       0,
		Trials:   make(experiment.Trials, opts.NumRuns),
		RandSeed: seed,
	}

	ev.ctx = ctx
	defer func() { ev.ctx = nil }()

	if err := exp.Execute(neat.NewContext(ctx, opts), start, ev, nil); err != nil {
		return nil, 0, fmt.Errorf("execute experiment: %w", err)
	}

	champion, fitness, ok := ev.Champion()
	if !ok {
		return nil, 0, errors.New("no organism was evaluated")
	}
	return champion, fitness, nil
}
