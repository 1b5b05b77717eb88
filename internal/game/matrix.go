package game

// PayoffMatrix maps each ordered pair of actions to (player1, player2) payoffs.
// The first action of a cell name belongs to player 1, so CooperateDefect
// is player 1 cooperating while player 2 defects.
type PayoffMatrix struct {
	BothCooperate   [2]float64 `json:"both_cooperate" yaml:"both_cooperate"`
	CooperateDefect [2]float64 `json:"cooperate_defect" yaml:"cooperate_defect"`
	DefectCooperate [2]float64 `json:"defect_cooperate" yaml:"defect_cooperate"`
	BothDefect      [2]float64 `json:"both_defect" yaml:"both_defect"`
}

// ClassicMatrix is the textbook prisoner's dilemma (T=5, R=3, P=1, S=0).
var ClassicMatrix = PayoffMatrix{
	BothCooperate:   [2]float64{3, 3},
	CooperateDefect: [2]float64{0, 5},
	DefectCooperate: [2]float64{5, 0},
	BothDefect:      [2]float64{1, 1},
}

// Lookup returns the payoff pair for the two actions, player 1 first.
func (m PayoffMatrix) Lookup(a1, a2 Action) (float64, float64) {
	var cell [2]float64
	switch {
	case a1 == Cooperate && a2 == Cooperate:
		cell = m.BothCooperate
	case a1 == Cooperate:
		cell = m.CooperateDefect
	case a2 == Cooperate:
		cell = m.DefectCooperate
	default:
		cell = m.BothDefect
	}
	return cell[0], cell[1]
}

// Cells lists the four cells in row-major order (player 1 cooperating first).
func (m PayoffMatrix) Cells() [4][2]float64 {
	return [4][2]float64{m.BothCooperate, m.CooperateDefect, m.DefectCooperate, m.BothDefect}
}

// Bounds returns the smallest and largest payoff player 1 can receive in a
// single round.
func (m PayoffMatrix) Bounds() (float64, float64) {
	cells := m.Cells()
	lo, hi := cells[0][0], cells[0][0]
	for _, c := range cells[1:] {
		if c[0] < lo {
			lo = c[0]
		}
		if c[0] > hi {
			hi = c[0]
		}
	}
	return lo, hi
}

// Equilibrium is the pure strategy Nash equilibrium a matrix settles into.
type Equilibrium int

const (
	NoPureEquilibrium Equilibrium = iota
	MutualDefection
	MutualCooperation
)

func (e Equilibrium) String() string {
	switch e {
	case MutualDefection:
		return "Both Defect (mutual defection is stable)"
	case MutualCooperation:
		return "Both Cooperate (mutual cooperation is stable)"
	}
	return "Mixed or no pure strategy Nash equilibrium"
}

// NashEquilibrium checks mutual defection first, then mutual cooperation.
// A cell is stable when neither player gains by switching alone.
func (m PayoffMatrix) NashEquilibrium() Equilibrium {
	switch {
	case m.BothDefect[0] >= m.CooperateDefect[0] && m.BothDefect[1] >= m.DefectCooperate[1]:
		return MutualDefection
	case m.BothCooperate[0] >= m.DefectCooperate[0] && m.BothCooperate[1] >= m.CooperateDefect[1]:
		return MutualCooperation
	}
	return NoPureEquilibrium
}

// Outcome is one cell of the matrix with its combined payoff.
type Outcome struct {
	Name    string
	Payoffs [2]float64
	Total   float64
}

var outcomeNames = [4]string{"Both Cooperate", "Cooperate vs Defect", "Defect vs Cooperate", "Both Defect"}

// BestOutcome returns the cell with the highest combined payoff. On a tie
// the earlier cell in Cells order wins.
func (m PayoffMatrix) BestOutcome() Outcome {
	var best Outcome
	for i, c := range m.Cells() {
		total := c[0] + c[1]
		if i == 0 || total > best.Total {
			best = Outcome{Name: outcomeNames[i], Payoffs: c, Total: total}
		}
	}
	return best
}
