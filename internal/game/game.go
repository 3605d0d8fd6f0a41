// Package game implements the 2048 controller on top of the board engine:
// modes and campaign levels, score and best score, spawning after the move
// animation, game over and win detection, rendering and the save record.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile2048/internal/board"
	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Dialog is a modal prompt shown over the board.
type Dialog int

const (
	DialogNone            Dialog = iota
	DialogCongratulations        // Win tile reached in classic mode
	DialogNewGame                // Confirm abandoning the current game
)

func init() {
	registry.Register(registry.ModeInfo{
		ID:          string(ModeClassic),
		Title:       "Classic",
		Description: "Reach the win tile, then keep going",
		Order:       1,
	}, func(opts registry.Options) registry.Game {
		return New(ModeClassic, opts)
	})
	registry.Register(registry.ModeInfo{
		ID:          string(ModeCampaign),
		Title:       "Campaign",
		Description: "Ten levels with rising targets",
		Order:       2,
	}, func(opts registry.Options) registry.Game {
		return New(ModeCampaign, opts)
	})
	registry.Register(registry.ModeInfo{
		ID:          string(ModeEndless),
		Title:       "Endless",
		Description: "No target, play until stuck",
		Order:       3,
	}, func(opts registry.Options) registry.Game {
		return New(ModeEndless, opts)
	})
}

// Game implements the 2048 controller. It listens to its board and drives
// the animations that follow every board change.
type Game struct {
	mode       Mode
	cfg        config.GameConfig
	logger     *log.Logger
	startLevel int

	board *board.Board
	rng   *rand.Rand
	tick  uint64
	run   int

	score        int
	best         int
	improvedBest bool

	levelIndex      int
	target          int
	levelCleared    bool
	levelClearTicks int
	levelClearDelay int

	screenW  int
	screenH  int
	tooSmall bool

	gameOver      bool
	won           bool
	paused        bool
	dialog        Dialog
	congratulated bool

	// Per-move bookkeeping filled by the listener callbacks
	pending     []TileAnimation
	merged      []board.Cell
	reachedWin  bool
	spawnedFull bool
	anim        animator
}

// New creates a game for mode. The board is sized from opts.Config.
func New(mode Mode, opts registry.Options) *Game {
	cfg := opts.Config
	if cfg.Board.Rows == 0 || cfg.Board.Cols == 0 {
		cfg = config.DefaultGameConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		mode:       mode,
		cfg:        cfg,
		logger:     logger.WithPrefix(string(mode)),
		startLevel: opts.StartLevel,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),

		levelClearDelay: 2 * core.DefaultConfig().TickRate,
	}

	b, err := board.New(cfg.Board.Rows, cfg.Board.Cols,
		board.WithRand(g.rng),
		board.WithSpawn4Chance(cfg.Board.Spawn4Chance),
	)
	if err != nil {
		g.logger.Warn("invalid board size, using default", "err", err)
		b, _ = board.New(board.DefaultRows, board.DefaultCols, board.WithRand(g.rng))
	}
	g.board = b
	g.board.AddListener(g)

	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeCampaign:
		return "2048 Campaign"
	case ModeEndless:
		return "2048 Endless"
	default:
		return "2048"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Board returns the board the game plays on.
func (g *Game) Board() *board.Board {
	return g.board
}

// Reset reseeds the generator and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng.Seed(seed)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.levelClearDelay = 2 * tickRate
	g.tick = 0

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.newGame()
}

// newGame clears the board, resets score and flags and spawns two tiles.
func (g *Game) newGame() {
	g.run++
	g.score = 0
	g.improvedBest = false
	g.gameOver = false
	g.won = false
	g.paused = false
	g.dialog = DialogNone
	g.congratulated = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.anim.stop()

	g.levelIndex = 0
	if g.mode == ModeCampaign {
		g.levelIndex = startIndex(g.startLevel)
	}
	g.loadLevel()

	g.pending = nil
	g.board.Init()
	g.play(PhasePop, g.takePending(), nil)

	g.logger.Debug("new game", "run", g.run, "level", g.levelIndex+1)
}

// loadLevel applies the current level's target and spawn chance.
func (g *Game) loadLevel() {
	if g.mode != ModeCampaign {
		g.target = 0
		if g.mode == ModeClassic {
			g.target = g.cfg.Board.WinTile
		}
		g.board.SetSpawn4Chance(g.cfg.Board.Spawn4Chance)
		return
	}

	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}
	g.target = level.Target
	g.board.SetSpawn4Chance(level.Spawn4)
}

// Resize records the screen size and checks that the board fits.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.dialog == DialogNone {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.update()

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.dialog != DialogNone {
		g.handleDialog(in)
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		if in.Has(core.ActionRestart) {
			g.newGame()
		}
		return core.StepResult{State: g.State()}
	}

	// Moves are ignored until the previous one has finished animating
	if g.anim.animating() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.dialog = DialogNewGame
		return core.StepResult{State: g.State()}
	}

	if a, ok := in.Move(); ok {
		g.move(actionDirection(a))
	}

	return core.StepResult{State: g.State()}
}

// handleDialog processes input while a dialog is shown.
func (g *Game) handleDialog(in core.InputFrame) {
	switch g.dialog {
	case DialogCongratulations:
		switch {
		case in.Has(core.ActionConfirm), in.Has(core.ActionBack):
			g.dialog = DialogNone
		case in.Has(core.ActionRestart):
			g.dialog = DialogNewGame
		}
	case DialogNewGame:
		switch {
		case in.Has(core.ActionConfirm), in.Has(core.ActionRestart):
			g.newGame()
		case in.Has(core.ActionBack):
			g.dialog = DialogNone
		}
	}
}

func actionDirection(a core.Action) board.Direction {
	switch a {
	case core.ActionLeft:
		return board.Left
	case core.ActionUp:
		return board.Up
	case core.ActionRight:
		return board.Right
	case core.ActionDown:
		return board.Down
	default:
		return 0
	}
}

// move shifts the board. A successful move plays the slide animation, and
// the next tile spawns when it finishes.
func (g *Game) move(dir board.Direction) {
	g.pending = nil
	g.merged = nil
	g.reachedWin = false

	moved, err := g.board.Move(dir)
	if err != nil {
		g.logger.Error("move failed", "dir", dir, "err", err)
		return
	}
	if !moved {
		return
	}

	g.logger.Debug("moved", "dir", dir, "score", g.score)
	g.play(PhaseSlide, g.takePending(), g.afterSlide)
}

// afterSlide runs once the tiles have arrived: merged tiles pop, then a new
// tile spawns unless the campaign level was just cleared.
func (g *Game) afterSlide() {
	pops := g.mergedPops()

	if g.mode == ModeCampaign && g.board.MaxTile() >= g.target {
		g.levelCleared = true
		g.levelClearTicks = 0
		g.logger.Info("level cleared", "level", g.levelIndex+1, "score", g.score)
		g.play(PhasePop, pops, nil)
		return
	}

	g.pending = nil
	g.spawnedFull = false
	g.board.Spawn()
	pops = append(pops, g.takePending()...)

	g.play(PhasePop, pops, g.afterPop)
}

// afterPop runs once the new tile has appeared.
func (g *Game) afterPop() {
	if g.spawnedFull && !g.board.CanMove() {
		g.gameOver = true
		g.logger.Info("game over", "score", g.score, "max", g.board.MaxTile())
		return
	}

	if g.reachedWin && !g.congratulated {
		g.congratulated = true
		g.dialog = DialogCongratulations
		g.logger.Info("win tile reached", "tile", g.target, "score", g.score)
	}
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		g.logger.Info("campaign complete", "score", g.score)
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// mergedPops turns the move's merges into pop animations at their destinations.
func (g *Game) mergedPops() []TileAnimation {
	pops := make([]TileAnimation, 0, len(g.merged))
	for _, c := range g.merged {
		pops = append(pops, TileAnimation{
			Value:  g.board.Number(c.Row, c.Col),
			From:   c,
			To:     c,
			Merged: true,
		})
	}
	return pops
}

func (g *Game) takePending() []TileAnimation {
	tiles := g.pending
	g.pending = nil
	return tiles
}

// setScore updates the score and raises the best score with it.
func (g *Game) setScore(score int) {
	g.score = score
	if score > g.best {
		g.best = score
		g.improvedBest = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Best:     g.best,
		MaxTile:  g.board.MaxTile(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared || g.dialog != DialogNone,
		Run:      g.run,
	}
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Best returns the best score.
func (g *Game) Best() int {
	return g.best
}

// SetBest raises the best score, for example from the score table.
func (g *Game) SetBest(best int) {
	if best > g.best {
		g.best = best
	}
}

// ImprovedBest reports whether the current game beat the previous best.
func (g *Game) ImprovedBest() bool {
	return g.improvedBest
}

// Dialog returns the dialog currently shown.
func (g *Game) Dialog() Dialog {
	return g.dialog
}

// Animating reports whether an animation phase is playing.
func (g *Game) Animating() bool {
	return g.anim.animating()
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: New game | Q: Quit"
}
