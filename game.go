package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/scene"
)

// maxFrameTime caps the time fed to the fixed clock after a stall.
const maxFrameTime = 0.25

type Game struct {
	frames int
	last   time.Time

	session *scene.Session
	render  *system.RenderSystem

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	debug   bool
}

func NewGame(opts scene.Options, debug bool) (*Game, error) {
	session, err := scene.New(opts)
	if err != nil {
		return nil, err
	}
	g := &Game{
		session: session,
		render:  system.NewRenderSystem(),
		debug:   debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), maxFrameTime)
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}

	g.frames++
	g.session.Frame(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.session.World, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.session.Space(), g.session.World, screen)
		system.DrawPlayerStateDebug(g.session.World, screen)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Steps: %d", g.frames, ebiten.ActualFPS(), g.session.Steps()))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) respawn() {
	if err := g.session.RequestRespawn(); err != nil {
		log.Printf("respawn: %v", err)
	}
}

func (g *Game) toggleAirControl() bool {
	on := !g.session.AirControl()
	if err := g.session.SetAirControl(on); err != nil {
		log.Printf("air control: %v", err)
	}
	return g.session.AirControl()
}

func (g *Game) Close() {
	if err := g.session.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
