package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"gpulife/internal/core"
	"gpulife/internal/life"
)

// GridStep is how many cells per axis one wheel notch adds or removes while
// the grid-resize modifier is held.
const GridStep = 5

// FPSInterval is how often the frame rate is reported.
const FPSInterval = 500 * time.Millisecond

// Input is one frame of user intent decoded from window events.
type Input struct {
	Quit        bool
	TogglePause bool
	SingleStep  bool
	FitGrid     bool
	Randomize   bool

	// Paint is set while the left button is held; Cursor is in window pixels.
	Paint  bool
	Cursor [2]float32

	// Wheel is the vertical scroll this frame. With ResizeMode it resizes the
	// grid, otherwise it changes the update period.
	Wheel      float64
	ResizeMode bool
}

// Merge folds a later frame of input into in. Edge-triggered requests are
// kept, wheel notches add up and the cursor follows the later frame.
func (in Input) Merge(next Input) Input {
	return Input{
		Quit:        in.Quit || next.Quit,
		TogglePause: in.TogglePause != next.TogglePause,
		SingleStep:  in.SingleStep || next.SingleStep,
		FitGrid:     in.FitGrid || next.FitGrid,
		Randomize:   in.Randomize || next.Randomize,
		Paint:       in.Paint || next.Paint,
		Cursor:      next.Cursor,
		Wheel:       in.Wheel + next.Wheel,
		ResizeMode:  in.ResizeMode || next.ResizeMode,
	}
}

// Status is what the HUD shows.
type Status struct {
	Grid       core.Size
	Output     core.Size
	Period     time.Duration
	Generation uint64
	Paused     bool
	FPS        float64
}

// Session drives a Controller from frame input: it owns the pause state, the
// generation ticker and frame statistics.
type Session struct {
	ctl    *life.Controller
	ticker *core.Ticker
	log    *slog.Logger

	paused     bool
	stepOnce   bool
	generation uint64

	frames int
	fpsAt  time.Time
	fps    float64
}

// NewSession wraps ctl. A nil logger discards output.
func NewSession(ctl *life.Controller, period time.Duration, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{ctl: ctl, ticker: core.NewTicker(period), log: log}
}

// Controller returns the driven controller.
func (s *Session) Controller() *life.Controller { return s.ctl }

// Handle applies in. It reports false once the user asked to quit. Errors
// from painting or randomizing are fatal; a failed grid resize is logged and
// the previous grid kept.
func (s *Session) Handle(in Input) (bool, error) {
	if in.Quit {
		return false, nil
	}
	if in.TogglePause {
		s.paused = !s.paused
		s.log.Debug("pause toggled", "paused", s.paused)
	}
	if in.SingleStep {
		s.stepOnce = true
	}

	if notches := sign(in.Wheel); notches != 0 {
		if in.ResizeMode {
			s.resizeGrid(s.ctl.GridSize().Grow(notches * GridStep))
		} else {
			period := s.ticker.Adjust(notches)
			s.log.Info(fmt.Sprintf("mutation set every %dms", period.Milliseconds()))
		}
	}
	if in.FitGrid {
		if out := s.ctl.OutputSize(); out.Valid() {
			s.resizeGrid(out)
		}
	}

	if in.Randomize {
		if err := s.ctl.RandomizeCurrent(); err != nil {
			return false, err
		}
	}
	if in.Paint && s.ctl.OutputSize().Valid() {
		if err := s.ctl.EditCell(1, in.Cursor); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Session) resizeGrid(size core.Size) {
	if err := s.ctl.ResizeGrid(size); err != nil {
		s.log.Error("resize grid", "err", err)
		return
	}
	s.log.Info(fmt.Sprintf("grid dimension set to %d × %d", size.W, size.H))
}

// Frame renders the current generation and then, when the period elapsed
// and the session is not paused, computes and promotes the next one. A
// render error ends the run; a mutate error is fatal.
func (s *Session) Frame(now time.Time) error {
	if err := s.ctl.Render(); err != nil {
		return err
	}

	advance := false
	if s.paused {
		advance = s.stepOnce
	} else {
		advance = s.ticker.Due(now)
	}
	s.stepOnce = false
	if advance {
		if err := s.ctl.Mutate(); err != nil {
			return err
		}
		s.ctl.Step()
		s.generation++
	}

	s.countFrame(now)
	return nil
}

func (s *Session) countFrame(now time.Time) {
	if s.fpsAt.IsZero() {
		s.fpsAt = now
		return
	}
	s.frames++
	elapsed := now.Sub(s.fpsAt)
	if elapsed < FPSInterval {
		return
	}
	s.fps = float64(s.frames) / elapsed.Seconds()
	s.log.Info(fmt.Sprintf("%d FPS", int(s.fps)))
	s.frames = 0
	s.fpsAt = now
}

// CellUnder returns the grid cell under a window position.
func (s *Session) CellUnder(p [2]float32) image.Point {
	grid := s.ctl.GridSize()
	return life.CellAt(life.WindowToGrid(p, s.ctl.OutputSize().Vec(), grid.Vec()), grid)
}

// Status reports the state shown by the HUD.
func (s *Session) Status() Status {
	return Status{
		Grid:       s.ctl.GridSize(),
		Output:     s.ctl.OutputSize(),
		Period:     s.ticker.Period(),
		Generation: s.generation,
		Paused:     s.paused,
		FPS:        s.fps,
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// CellRect returns the window-pixel rectangle covered by cell.
func (s *Session) CellRect(cell image.Point) image.Rectangle {
	grid := s.ctl.GridSize().Vec()
	window := s.ctl.OutputSize().Vec()
	lo := life.GridToWindow([2]float32{float32(cell.X), float32(cell.Y)}, window, grid)
	hi := life.GridToWindow([2]float32{float32(cell.X + 1), float32(cell.Y + 1)}, window, grid)
	return image.Rect(int(lo[0]), int(lo[1]), int(hi[0]+0.5), int(hi[1]+0.5))
}

// Lines formats st for the HUD.
func (st Status) Lines() []string {
	state := "running"
	if st.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("grid %d × %d", st.Grid.W, st.Grid.H),
		fmt.Sprintf("generation %d", st.Generation),
		fmt.Sprintf("every %dms, %s", st.Period.Milliseconds(), state),
		fmt.Sprintf("%.0f FPS", st.FPS),
	}
}
