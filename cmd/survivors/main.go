package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/1siamBot/survivors-engine/engine/audio"
	"github.com/1siamBot/survivors-engine/engine/config"
	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/input"
	"github.com/1siamBot/survivors-engine/engine/logging"
	"github.com/1siamBot/survivors-engine/engine/render"
	"github.com/1siamBot/survivors-engine/engine/sim"
	"github.com/1siamBot/survivors-engine/engine/ui"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Game implements ebiten.Game interface
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	sim      *sim.Simulation
	gameLoop *core.GameLoop
	renderer *render.WorldRenderer
	hud      *ui.HUD
	input    *input.InputState
	audio    *audio.AudioManager
	replay   string
}

func NewGame(cfg *config.Config, logger *zap.Logger, replay string) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      logger,
		renderer: render.NewWorldRenderer(ScreenWidth, ScreenHeight),
		hud:      ui.NewHUD(ScreenWidth, ScreenHeight),
		input:    input.NewInputState(),
		audio:    audio.NewAudioManager(audio.NewToneSink()),
		replay:   replay,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// start begins a fresh run, closing the previous one.
func (g *Game) start() error {
	if g.sim != nil {
		if err := g.sim.Close(); err != nil {
			g.log.Error("closing run", zap.Error(err))
		}
	}
	opts := []sim.Option{sim.WithLogger(g.log)}
	if g.replay != "" {
		opts = append(opts, sim.WithReplayFile(g.replay))
	}
	s, err := sim.New(g.cfg, opts...)
	if err != nil {
		return err
	}
	g.sim = s
	g.audio.Listen(s.Bus())
	g.gameLoop = core.NewGameLoop(s, g.cfg.Simulation.TickRate)
	g.gameLoop.MaxFrameTime = g.cfg.Simulation.MaxFrameTime
	g.gameLoop.Play()
	return nil
}

func (g *Game) Update() error {
	g.input.Update()

	if g.input.JustPressed(input.ActionToggleGrid) {
		g.renderer.ShowGrid = !g.renderer.ShowGrid
	}
	if g.input.JustPressed(input.ActionToggleHUD) {
		g.hud.ShowDebug = !g.hud.ShowDebug
	}

	switch g.gameLoop.State {
	case core.StatePlaying:
		if g.input.JustPressed(input.ActionPause) {
			g.gameLoop.Pause()
		}
	case core.StatePaused:
		if g.input.JustPressed(input.ActionPause) {
			g.gameLoop.Play()
		}
	case core.StateGameOver:
		if g.input.JustPressed(input.ActionRestart) {
			return g.start()
		}
	}

	g.sim.Steer(g.input.Move)
	g.gameLoop.Update()
	if g.sim.GameOver() {
		g.gameLoop.End()
	}

	if pos, ok := g.sim.World().Get(g.sim.Player(), core.CompPosition).(*core.Position); ok {
		g.renderer.Camera.Follow(pos.Vec(), 1/float64(ebiten.TPS()))
		g.audio.SetListener(pos.Vec())
	}
	g.audio.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim.World(), g.sim.Broad().Grid())

	overlay := ui.OverlayNone
	switch g.gameLoop.State {
	case core.StatePaused:
		overlay = ui.OverlayPaused
	case core.StateGameOver:
		overlay = ui.OverlayGameOver
	}
	g.hud.Draw(screen, g.sim.Stats(), overlay)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file (defaults when empty)")
	replay := flag.String("replay", "", "write a replay of each run to this file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	logger := logging.Must(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Survivors")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game, err := NewGame(cfg, logger, *replay)
	if err != nil {
		logger.Fatal("starting run", zap.Error(err))
	}
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
	if err := game.sim.Close(); err != nil {
		logger.Error("closing run", zap.Error(err))
	}
}
