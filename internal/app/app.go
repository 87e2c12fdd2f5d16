//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"gpulife/internal/gpu/ebitengpu"
	"gpulife/internal/life"
	"gpulife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface. The screen is laid out
// at window size so one screen pixel is one window pixel.
//
// ebiten may replace the screen image between Draw and the next Update, so
// the controller only holds the screen while Draw runs. Update collects
// input into pending and Draw applies it once the current screen is bound.
type Game struct {
	session *Session
	hud     *ui.HUD
	overlay *ui.Overlay

	pending Input
	cursor  [2]float32
	err     error
}

// New constructs a Game running on the ebiten backend.
func New(cfg *Config, log *slog.Logger) (*Game, error) {
	ctl, err := life.New(ebitengpu.New(), nil, cfg.GridSize(), cfg.Options()...)
	if err != nil {
		return nil, err
	}
	return &Game{
		session: NewSession(ctl, cfg.Period(), log),
		hud:     ui.NewHUD(),
		overlay: ui.NewOverlay(),
	}, nil
}

// Close releases the controller.
func (g *Game) Close() { g.session.Controller().Close() }

// Update collects input for the next Draw.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	x, y := ebiten.CursorPosition()
	g.cursor = [2]float32{float32(x), float32(y)}
	_, wheel := ebiten.Wheel()

	in := Input{
		Quit:        inpututil.IsKeyJustReleased(ebiten.KeyEscape),
		TogglePause: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		SingleStep:  inpututil.IsKeyJustPressed(ebiten.KeyN),
		FitGrid:     inpututil.IsKeyJustReleased(ebiten.KeyEnter),
		Randomize:   inpututil.IsKeyJustReleased(ebiten.KeyBackspace),
		Paint:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Cursor:      g.cursor,
		Wheel:       wheel,
		ResizeMode:  ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
	}
	if in.Quit {
		return ebiten.Termination
	}
	g.hud.Update()
	g.overlay.Update()
	g.pending = g.pending.Merge(in)
	return nil
}

// Draw binds the screen, applies pending input, renders the current
// generation and advances the simulation when due.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	ctl := g.session.Controller()
	ctl.ResizeOutput(ebitengpu.Screen(screen))
	defer ctl.ResizeOutput(nil)

	in := g.pending
	g.pending = Input{Cursor: g.cursor}
	if _, err := g.session.Handle(in); err != nil {
		g.err = err
		return
	}
	if err := g.session.Frame(time.Now()); err != nil {
		g.err = err
		return
	}
	g.overlay.Draw(screen, g.session.CellRect(g.session.CellUnder(g.cursor)))
	g.hud.Draw(screen, g.session.Status().Lines())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
