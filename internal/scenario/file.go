package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boyter/titfortat/internal/game"
)

// Editable payoff range, matching the matrix editor sliders.
const (
	MinPayoff  = -5.0
	MaxPayoff  = 10.0
	PayoffStep = 0.5
)

// cell pointers distinguish a missing cell from a zero payoff
type fileMatrix struct {
	BothCooperate   *[2]float64 `yaml:"both_cooperate"`
	CooperateDefect *[2]float64 `yaml:"cooperate_defect"`
	DefectCooperate *[2]float64 `yaml:"defect_cooperate"`
	BothDefect      *[2]float64 `yaml:"both_defect"`
}

type fileScenario struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description"`
	CooperateLabel string      `yaml:"cooperate_label"`
	DefectLabel    string      `yaml:"defect_label"`
	PayoffMatrix   *fileMatrix `yaml:"payoff_matrix"`
	RealWorld      bool        `yaml:"real_world"`
	Countries      []string    `yaml:"countries"`
}

type file struct {
	Scenarios []fileScenario `yaml:"scenarios"`
}

// LoadFile reads scenarios from a YAML file.
func LoadFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	scenarios, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// Decode reads a YAML document with a top-level scenarios list. Every
// scenario must carry all four matrix cells.
func Decode(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no scenarios defined")
		}
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, errors.New("no scenarios defined")
	}

	seen := map[string]bool{}
	out := make([]Scenario, 0, len(doc.Scenarios))
	for i, fs := range doc.Scenarios {
		s, err := fs.scenario()
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("scenario %d: duplicate id %q", i+1, s.ID)
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out, nil
}

func (fs fileScenario) scenario() (Scenario, error) {
	id := strings.TrimSpace(fs.ID)
	if id == "" {
		return Scenario{}, errors.New("id is required")
	}
	if fs.PayoffMatrix == nil {
		return Scenario{}, fmt.Errorf("%s: payoff_matrix is required", id)
	}

	m := fs.PayoffMatrix
	cells := []struct {
		name string
		cell *[2]float64
	}{
		{"both_cooperate", m.BothCooperate},
		{"cooperate_defect", m.CooperateDefect},
		{"defect_cooperate", m.DefectCooperate},
		{"both_defect", m.BothDefect},
	}
	for _, c := range cells {
		if c.cell == nil {
			return Scenario{}, fmt.Errorf("%s: payoff_matrix.%s is required", id, c.name)
		}
	}

	name := strings.TrimSpace(fs.Name)
	if name == "" {
		name = id
	}
	s := Scenario{
		ID:             id,
		Name:           name,
		Description:    fs.Description,
		CooperateLabel: fs.CooperateLabel,
		DefectLabel:    fs.DefectLabel,
		PayoffMatrix: game.PayoffMatrix{
			BothCooperate:   *m.BothCooperate,
			CooperateDefect: *m.CooperateDefect,
			DefectCooperate: *m.DefectCooperate,
			BothDefect:      *m.BothDefect,
		},
		RealWorld: fs.RealWorld,
		Countries: fs.Countries,
	}
	if err := Validate(s.PayoffMatrix); err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", id, err)
	}
	return s, nil
}

// Validate checks every payoff sits on the editable grid.
func Validate(m game.PayoffMatrix) error {
	names := [4]string{"both_cooperate", "cooperate_defect", "defect_cooperate", "both_defect"}
	for i, cell := range m.Cells() {
		for p, v := range cell {
			if math.IsNaN(v) || v < MinPayoff || v > MaxPayoff {
				return fmt.Errorf("%s player %d payoff %v outside [%v, %v]", names[i], p+1, v, MinPayoff, MaxPayoff)
			}
			if steps := v / PayoffStep; steps != math.Trunc(steps) {
				return fmt.Errorf("%s player %d payoff %v is not a multiple of %v", names[i], p+1, v, PayoffStep)
			}
		}
	}
	return nil
}
