package game

import "fmt"

// Action is a single move in a round.
type Action int

const (
	Cooperate Action = iota
	Defect
)

func (a Action) String() string {
	switch a {
	case Cooperate:
		return "cooperate"
	case Defect:
		return "defect"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Opposite flips cooperate to defect and back again.
func (a Action) Opposite() Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

func (a Action) MarshalText() ([]byte, error) {
	switch a {
	case Cooperate, Defect:
		return []byte(a.String()), nil
	}
	return nil, fmt.Errorf("invalid action %d", int(a))
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction accepts the text form produced by Action.String.
func ParseAction(s string) (Action, error) {
	switch s {
	case "cooperate":
		return Cooperate, nil
	case "defect":
		return Defect, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Seat identifies which side of the table a strategy is playing.
type Seat int

const (
	Player1 Seat = 1
	Player2 Seat = 2
)

// Other returns the opponent's seat.
func (s Seat) Other() Seat {
	if s == Player1 {
		return Player2
	}
	return Player1
}
