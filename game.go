package main

import (
	"image/color"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flappy/assets"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
	"github.com/milk9111/flappy/ecs/entity"
	"github.com/milk9111/flappy/ecs/system"
	"github.com/milk9111/flappy/prefabs"
)

type Options struct {
	Debug bool
	Mute  bool
	Watch bool
	// Seed fixes pipe placement and particle spread; zero picks a random seed.
	Seed uint64
}

type Game struct {
	opts   Options
	world  *ecs.World
	states *ecs.StateMachine[component.GameState]

	// input runs before the state systems; post runs after transitions.
	input  *ecs.Scheduler
	post   *ecs.Scheduler
	render *ecs.Scheduler

	tuning     prefabs.Tuning
	clearColor color.NRGBA
	scroll     *system.ScrollSystem
	renderer   *system.RenderSystem
	audio      *system.AudioSystem

	watcher *prefabs.Watcher

	paused     bool
	quit       bool
	pauseUI    *ebitenui.UI
	gameOverUI *gameOverUI
}

func NewGame(opts Options) (*Game, error) {
	system.Debug = opts.Debug

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if opts.Debug {
		log.Printf("game: seed %d", seed)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	script, err := system.LoadPipeScript(tuning.Pipes.Script)
	if err != nil {
		// The built-in placement is used instead.
		log.Printf("game: %v", err)
	}

	g := &Game{
		opts:       opts,
		world:      ecs.NewWorld(),
		states:     ecs.NewStateMachine(component.StateMainMenu),
		tuning:     tuning,
		clearColor: tuning.ClearColor.NRGBA(),
		scroll:     system.NewScrollSystem(tuning.Pipes.OffsetAmplitude, script, rng),
		renderer:   system.NewRenderSystem(cameraFor(tuning), assets.HUDFontSource),
		audio:      system.NewAudioSystem(),
	}
	g.audio.Muted = opts.Mute

	if err := g.spawnGlobals(); err != nil {
		return nil, err
	}
	g.setupStates(rng)

	g.input = ecs.NewScheduler(system.NewInputSystem())
	g.post = ecs.NewScheduler(g.audio, system.NewMusicSystem())
	g.render = ecs.NewScheduler(g.renderer)

	g.pauseUI = NewPauseUI(g)
	g.gameOverUI = newGameOverUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("game: watch %s: %v", prefabs.Dir, err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func cameraFor(t prefabs.Tuning) system.Camera {
	return system.Camera{
		Width:  float64(t.Window.Width),
		Height: float64(t.Window.Height),
		Zoom:   t.Window.Zoom,
	}
}

func (g *Game) spawnGlobals() error {
	for _, spawn := range []func(*ecs.World) (ecs.Entity, error){
		entity.NewInput,
		entity.NewHighScore,
		entity.NewSoundEffects,
		entity.NewMusicPlayer,
	} {
		if _, err := spawn(g.world); err != nil {
			return err
		}
	}

	if g.tuning.Music.Track != "" {
		system.RequestMusic(g.world, g.tuning.Music.Track, g.tuning.Music.Volume)
	}
	if g.opts.Mute {
		system.SetMuted(g.world, true)
	}
	return nil
}

func (g *Game) setupStates(rng *rand.Rand) {
	sm := g.states
	sm.Allow = func(from, to component.GameState) bool {
		return from.Next() == to
	}

	sm.OnEnter(component.StateMainMenu, g.must(func(w *ecs.World) error {
		if _, err := entity.SpawnMenu(w); err != nil {
			return err
		}
		return g.spawnScenery(w, component.StateMainMenu)
	}))
	sm.OnExit(component.StateMainMenu, system.DespawnStateScoped(component.StateMainMenu))
	sm.Systems(component.StateMainMenu).Add(system.NewMenuInputSystem())
	sm.Systems(component.StateMainMenu).Add(g.scroll)

	sm.OnEnter(component.StateInGame, g.must(func(w *ecs.World) error {
		g.paused = false
		if _, err := entity.SpawnPlayer(w, g.tuning.Player); err != nil {
			return err
		}
		if _, err := entity.SpawnScore(w); err != nil {
			return err
		}
		if _, err := entity.SpawnTrail(w, g.tuning.Player); err != nil {
			return err
		}
		return g.spawnScenery(w, component.StateInGame)
	}))
	sm.OnExit(component.StateInGame, system.DespawnStateScoped(component.StateInGame))
	for _, s := range []ecs.System{
		system.NewAnimationSystem(),
		system.NewFollowSystem(),
		g.scroll,
		system.NewFlapSystem(),
		system.NewGravitySystem(),
		system.NewScoreSystem(),
		system.NewRotateSystem(),
		system.NewParticleSystem(rng),
		system.NewCollisionSystem(),
		system.NewDeathSystem(),
		system.NewScoreTextSystem(),
	} {
		sm.Systems(component.StateInGame).Add(s)
	}

	sm.OnEnter(component.StateGameOver, g.must(func(w *ecs.World) error {
		_, err := entity.SpawnGameOver(w)
		g.gameOverUI.refresh(w)
		return err
	}))
	sm.OnExit(component.StateGameOver, system.DespawnStateScoped(component.StateGameOver))
	sm.Systems(component.StateGameOver).Add(system.NewGameOverInputSystem())
}

// spawnScenery lays out the scrolling background, floor and pipes for state.
func (g *Game) spawnScenery(w *ecs.World, state component.GameState) error {
	if _, err := entity.SpawnBackground(w, g.tuning.Background, state); err != nil {
		return err
	}
	if _, err := entity.SpawnFloor(w, g.tuning.Floor, state); err != nil {
		return err
	}
	_, err := entity.SpawnPipes(w, g.tuning.Pipes, state)
	return err
}

// must turns a failing hook into a fatal error; a state that cannot load its
// prefabs or assets cannot be played.
func (g *Game) must(hook func(*ecs.World) error) func(*ecs.World) {
	return func(w *ecs.World) {
		if err := hook(w); err != nil {
			log.Fatalf("state %s: %v", g.states.Current(), err)
		}
	}
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.close()
		return ebiten.Termination
	}

	g.pollWatcher()
	g.input.Update(g.world)

	if g.states.Current() == component.StateInGame && system.CurrentInput(g.world).Pause {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		g.post.Update(g.world)
		g.world.EndFrame()
		return nil
	}

	g.states.Update(g.world)
	if next, ok := system.ConsumeStateRequest(g.world); ok {
		from := g.states.Current()
		if g.states.Request(next) && g.states.Apply(g.world) && g.opts.Debug {
			log.Printf("game: %s -> %s", from, next)
		}
	}
	if g.states.Current() == component.StateGameOver {
		g.gameOverUI.ui.Update()
	}

	g.post.Update(g.world)
	g.world.EndFrame()
	return nil
}

// setPaused freezes the run. Pausing cuts the wing sound and the music;
// resuming requests the track again.
func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		system.StopSound(g.world, "wing")
		system.StopMusic(g.world)
		return
	}
	if g.tuning.Music.Track != "" {
		system.RequestMusic(g.world, g.tuning.Music.Track, g.tuning.Music.Volume)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clearColor)
	g.render.Draw(g.world, screen)

	switch {
	case g.paused:
		g.pauseUI.Draw(screen)
	case g.states.Current() == component.StateGameOver:
		g.gameOverUI.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.tuning.Window.Width, g.tuning.Window.Height
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Poll() {
		switch {
		case prefabs.IsScriptFile(path):
			g.reloadScript()
		case isTuningFile(path):
			g.reloadTuning()
		case prefabs.IsSpecFile(path):
			// Prefabs are read on every spawn; the next state entry picks this up.
			if g.opts.Debug {
				log.Printf("game: %s changed", path)
			}
		}
	}
}

func (g *Game) reloadScript() {
	script, err := system.LoadPipeScript(g.tuning.Pipes.Script)
	if err != nil {
		log.Printf("game: reload pipe script: %v", err)
		return
	}
	g.scroll.SetScript(script)
	if g.opts.Debug {
		log.Printf("game: reloaded %s", script.Path())
	}
}

func (g *Game) reloadTuning() {
	t, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("game: reload tuning: %v", err)
		return
	}
	scriptChanged := t.Pipes.Script != g.tuning.Pipes.Script
	g.tuning = t
	g.clearColor = t.ClearColor.NRGBA()
	g.renderer.Camera = cameraFor(t)
	g.scroll.Amplitude = t.Pipes.OffsetAmplitude
	if scriptChanged {
		g.reloadScript()
	}
	if g.opts.Debug {
		log.Printf("game: reloaded %s", prefabs.TuningFile)
	}
}

func (g *Game) close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func isTuningFile(path string) bool {
	return prefabs.IsSpecFile(path) && filepath.Base(path) == prefabs.TuningFile
}
