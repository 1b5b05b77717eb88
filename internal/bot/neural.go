package bot

import (
	"fmt"
	"io"
	"sync"

	"github.com/yaricom/goNEAT/v2/neat/genetics"
	"github.com/yaricom/goNEAT/v2/neat/network"

	"github.com/boyter/titfortat/internal/game"
)

// NeuralInputs is the number of sensors a network needs to play: own last
// action, opponent last action and a bias.
const NeuralInputs = 3

// NeuralOutputs is the number of outputs read from the network.
const NeuralOutputs = 1

// NeuralNetworkBot plays whatever a NEAT network says. Output above 0.5
// means defect.
type NeuralNetworkBot struct {
	name string

	mu  sync.Mutex
	net *network.Network
}

// NewNeuralNetworkBot wraps an activated phenotype. name is how the bot
// shows up in results.
func NewNeuralNetworkBot(net *network.Network, name string) *NeuralNetworkBot {
	if name == "" {
		name = "Neural Network"
	}
	return &NeuralNetworkBot{net: net, name: name}
}

// LoadNeuralNetworkBot reads a plain-encoded genome and builds its network.
func LoadNeuralNetworkBot(r io.Reader, name string) (*NeuralNetworkBot, error) {
	genome, err := genetics.ReadGenome(r, 1)
	if err != nil {
		return nil, fmt.Errorf("read genome: %w", err)
	}
	net, err := genome.Genesis(1)
	if err != nil {
		return nil, fmt.Errorf("genesis: %w", err)
	}
	return NewNeuralNetworkBot(net, name), nil
}

func (r *NeuralNetworkBot) ID() string   { return "neural-network" }
func (r *NeuralNetworkBot) Name() string { return r.name }
func (r *NeuralNetworkBot) Description() string {
	return "Evolved network fed both players' previous moves"
}

func (r *NeuralNetworkBot) Decision(history []game.RoundResult, seat game.Seat) game.Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	// clear activations from the last decision so only history matters
	if _, err := r.net.Flush(); err != nil {
		return game.Cooperate
	}

	own, opponent := game.Cooperate, game.Cooperate
	if last, ok := lastRound(history); ok {
		own, opponent = last.Own(seat), last.Opponent(seat)
	}

	if err := r.net.LoadSensors(Sensors(own, opponent)); err != nil {
		return game.Cooperate
	}
	if _, err := r.net.Activate(); err != nil {
		return game.Cooperate
	}
	outputs := r.net.ReadOutputs()

	// based on what the network says play!
	if len(outputs) > 0 && outputs[0] > 0.5 {
		return game.Defect
	}
	return game.Cooperate
}

// Sensors encodes the previous round for the network, bias last.
func Sensors(own, opponent game.Action) []float64 {
	return []float64{float64(own), float64(opponent), 1.0}
}
