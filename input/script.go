package input

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step holds a set of keys for a number of consecutive frames.
type Step struct {
	Frames int     `yaml:"frames"` // number of frames this step lasts (min 1)
	DT     float64 `yaml:"dt"`     // seconds per frame (0 = caller default)
	Held   []Key   `yaml:"held"`   // keys held during every frame of the step
}

// Script is a recorded sequence of keyboard steps for headless runs.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a YAML script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parsing script: no steps")
	}
	for i := range s.Steps {
		if s.Steps[i].Frames < 1 {
			s.Steps[i].Frames = 1
		}
		if s.Steps[i].DT < 0 {
			return nil, fmt.Errorf("parsing script: step %d has negative dt", i)
		}
	}
	return s, nil
}

// TotalFrames returns the number of frames the script covers.
func (s *Script) TotalFrames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// Playback replays a script one frame at a time.
type Playback struct {
	script    *Script
	tracker   *Tracker
	defaultDT float64

	step  int
	frame int
}

// NewPlayback starts replaying s. Steps without a dt use defaultDT.
func NewPlayback(s *Script, defaultDT float64) *Playback {
	return &Playback{
		script:    s,
		tracker:   NewTracker(),
		defaultDT: defaultDT,
	}
}

// Next returns the keyboard and dt for the next frame.
// ok is false once the script is exhausted.
func (p *Playback) Next() (kb Snapshot, dt float64, ok bool) {
	for p.step < len(p.script.Steps) && p.frame >= p.script.Steps[p.step].Frames {
		p.step++
		p.frame = 0
	}
	if p.step >= len(p.script.Steps) {
		return Snapshot{}, 0, false
	}
	st := p.script.Steps[p.step]
	p.frame++

	dt = st.DT
	if dt == 0 {
		dt = p.defaultDT
	}
	return p.tracker.Next(st.Held...), dt, true
}

// Done reports whether every frame has been replayed.
func (p *Playback) Done() bool {
	for p.step < len(p.script.Steps) && p.frame >= p.script.Steps[p.step].Frames {
		p.step++
		p.frame = 0
	}
	return p.step >= len(p.script.Steps)
}
