package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/input"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted input sequence for one run.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Scene       string         `yaml:"scene"`
	Duration    float64        `yaml:"duration"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep holds keys down from At for For seconds. Throw and Teleport
// fire once, on the first frame at or after At.
type ScenarioStep struct {
	At       float64        `yaml:"at"`
	For      float64        `yaml:"for"`
	Input    input.Snapshot `yaml:"input"`
	Azimuth  *float64       `yaml:"azimuth,omitempty"`
	Throw    *ThrowStep     `yaml:"throw,omitempty"`
	Teleport []float64      `yaml:"teleport,omitempty"`
}

type ThrowStep struct {
	Aim  []float64 `yaml:"aim"`
	Held float64   `yaml:"held"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, step := range s.Steps {
		switch {
		case step.At < 0:
			return fmt.Errorf("%w: step %d starts at %g", ErrInvalidScenario, i+1, step.At)
		case step.For < 0:
			return fmt.Errorf("%w: step %d lasts %g", ErrInvalidScenario, i+1, step.For)
		case step.Teleport != nil && len(step.Teleport) != 3:
			return fmt.Errorf("%w: step %d teleport needs x, y, z", ErrInvalidScenario, i+1)
		case step.Throw != nil && len(step.Throw.Aim) != 3:
			return fmt.Errorf("%w: step %d throw aim needs x, y, z", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// End is when the last step releases its keys.
func (s *Scenario) End() float64 {
	end := 0.0
	for _, step := range s.Steps {
		end = max(end, step.At+step.For)
	}
	return end
}

// Script replays a scenario as a control.Source.
type Script struct {
	steps   []ScenarioStep
	fired   []bool
	azimuth float64
}

func (s *Scenario) Source() *Script {
	steps := make([]ScenarioStep, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return &Script{steps: steps, fired: make([]bool, len(steps))}
}

func vec(v []float64) mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

// Command merges every step active at obs.Time. Keys of overlapping steps
// combine; the latest azimuth wins and persists.
func (s *Script) Command(obs control.Observation) control.Command {
	var cmd control.Command
	for i, step := range s.steps {
		if obs.Time < step.At {
			break
		}
		if obs.Time < step.At+step.For {
			in := step.Input
			cmd.Input.Forward = cmd.Input.Forward || in.Forward
			cmd.Input.Back = cmd.Input.Back || in.Back
			cmd.Input.Left = cmd.Input.Left || in.Left
			cmd.Input.Right = cmd.Input.Right || in.Right
			cmd.Input.Run = cmd.Input.Run || in.Run
			cmd.Input.Jump = cmd.Input.Jump || in.Jump
		}
		if step.Azimuth != nil {
			s.azimuth = *step.Azimuth
		}
		if s.fired[i] {
			continue
		}
		if step.Throw != nil {
			cmd.Throw = &control.Throw{Aim: vec(step.Throw.Aim), Held: step.Throw.Held}
			s.fired[i] = true
		}
		if step.Teleport != nil {
			target := vec(step.Teleport)
			cmd.Teleport = &target
			s.fired[i] = true
		}
	}
	cmd.Azimuth = s.azimuth
	return cmd
}

// Reset rewinds the script for another run.
func (s *Script) Reset() {
	for i := range s.fired {
		s.fired[i] = false
	}
	s.azimuth = 0
}
