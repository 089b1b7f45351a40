// Package replay runs placement gestures from a TOML script without a
// window. A script lists container sizes, content changes and gesture
// samples in order, so an interaction can be reproduced from the command
// line and its final placements inspected.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
	"github.com/OpticalFlyer/teeforge/ui"
)

var (
	// ErrUnknownOp is returned for a step whose op is not recognised.
	ErrUnknownOp = errors.New("unknown op")
	// ErrBadStep is returned for a step with missing or invalid fields.
	ErrBadStep = errors.New("invalid step")
)

// Step is one scripted event. Which fields matter depends on Op:
//
//	dims      width, height
//	content   kind, present, aspect
//	aspect    aspect
//	begin     kind, gesture (drag|resize|rotate), handle
//	move      dx, dy, deg
//	end, cancel, deselect, reset
//	down, drag  x, y (pointer position in container pixels)
//	up, lost
//	turn      deg
//	mode      mode (move|rotate)
type Step struct {
	Op      string  `toml:"op"`
	Kind    string  `toml:"kind"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Present bool    `toml:"present"`
	Aspect  float64 `toml:"aspect"`
	Gesture string  `toml:"gesture"`
	Handle  string  `toml:"handle"`
	DX      float64 `toml:"dx"`
	DY      float64 `toml:"dy"`
	Deg     float64 `toml:"deg"`
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Mode    string  `toml:"mode"`
}

// Script is a parsed replay file. GridSize, when set, overrides the
// configured grid and must be positive like it.
type Script struct {
	GridSize *float64 `toml:"grid_size"`
	Steps    []Step   `toml:"step"`
}

// Parse decodes a script. Keys the script format does not know are
// rejected so that typos do not silently change a replay.
func Parse(r io.Reader) (Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Script{}, fmt.Errorf("decoding script: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Script{}, fmt.Errorf("%w: unknown key %q", ErrBadStep, keys[0].String())
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Player feeds script steps to a controller and a pointer tracker bound
// to the same store.
type Player struct {
	Controller *ui.Controller
	Tracker    *ui.Tracker
	logger     *log.Logger
}

// NewPlayer creates a player over an empty store. grid is used unless the
// script sets its own.
func NewPlayer(grid float64, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	c, err := ui.NewController(placement.NewStore(), grid, ui.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Player{Controller: c, Tracker: ui.NewTracker(c), logger: logger}, nil
}

// Run plays every step of s in order. Engine refusals such as a gesture
// starting on an empty container are logged and skipped, the same way the
// interactive designer absorbs them; malformed steps stop the run.
func Run(ctx context.Context, s Script, grid float64, logger *log.Logger) (*Player, error) {
	if s.GridSize != nil {
		grid = *s.GridSize
	}
	p, err := NewPlayer(grid, logger)
	if err != nil {
		return nil, err
	}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return p, err
		}
		if err := p.Play(st); err != nil {
			return p, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return p, nil
}

// Play applies one step.
func (p *Player) Play(st Step) error {
	c, t := p.Controller, p.Tracker
	switch st.Op {
	case "dims":
		c.SetDimensions(proj.Dimensions{Width: st.Width, Height: st.Height})
	case "content":
		k, err := placement.ParseKind(st.Kind)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadStep, err)
		}
		if k == placement.Image && st.Aspect > 0 {
			c.SetImageAspect(st.Aspect)
		}
		c.SetContent(k, st.Present)
	case "aspect":
		c.SetImageAspect(st.Aspect)
	case "begin":
		k, err := placement.ParseKind(st.Kind)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadStep, err)
		}
		g, ok := ui.ParseGesture(st.Gesture)
		if !ok {
			return fmt.Errorf("%w: gesture %q", ErrBadStep, st.Gesture)
		}
		h := ui.HandleBody
		if st.Handle != "" {
			if h, ok = ui.ParseHandle(st.Handle); !ok {
				return fmt.Errorf("%w: handle %q", ErrBadStep, st.Handle)
			}
		}
		if err := c.Begin(k, g, h); err != nil {
			p.logger.Warn("begin skipped", "kind", k, "gesture", g, "err", err)
		}
	case "move":
		c.Move(ui.Delta{X: st.DX, Y: st.DY, Deg: st.Deg})
	case "end":
		c.End()
	case "cancel":
		c.Cancel()
	case "deselect":
		c.Deselect()
	case "reset":
		c.Reset()
	case "down":
		t.Down(st.X, st.Y)
	case "drag":
		t.Move(st.X, st.Y)
	case "up":
		t.Up()
	case "lost":
		t.Lost()
	case "turn":
		t.Turn(st.Deg)
	case "mode":
		switch st.Mode {
		case "move":
			t.Mode = ui.ModeMove
		case "rotate":
			t.Mode = ui.ModeRotate
		default:
			return fmt.Errorf("%w: mode %q", ErrBadStep, st.Mode)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
	p.logger.Debug("step", "op", st.Op, "state", c.State().Gesture)
	return nil
}
