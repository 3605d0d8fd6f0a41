package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

// screenshotDir is relative to the home directory.
const screenshotDir = ".tile2048/screenshots"

// bestSetter is implemented by games that show a best score from earlier runs.
type bestSetter interface {
	SetBest(best int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      uuid.UUID
	quitting   bool
	scoreSaved bool // Whether score has been saved for the current run
}

// NewModel creates a Bubble Tea model for the given game and starts it.
// A saved game from the store is resumed when there is one.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	m.start()
	return m
}

// start resets the game, then applies the stored best score and save slot.
func (m *Model) start() {
	m.game.Reset(m.config)

	if m.store != nil {
		if best, err := m.store.HighScore(m.game.ID()); err != nil {
			m.logger.Warn("cannot read high score", "game", m.game.ID(), "err", err)
		} else if bs, ok := m.game.(bestSetter); ok {
			bs.SetBest(best)
		}
		m.restore()
	}

	m.gameState = m.game.State()
	m.newRun()
}

// restore loads the save slot into a persistent game. A record that does
// not fit the current board is dropped.
func (m *Model) restore() {
	p, ok := m.game.(registry.Persistent)
	if !ok {
		return
	}

	data, found, err := m.store.LoadState(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load save", "game", m.game.ID(), "err", err)
		return
	}
	if !found {
		return
	}

	if err := p.LoadState(data); err != nil {
		m.logger.Warn("discarding save", "game", m.game.ID(), "err", err)
		//nolint:errcheck // Best-effort cleanup
		m.store.DeleteState(m.game.ID())
		return
	}
	m.logger.Info("resumed saved game", "game", m.game.ID())
}

// persist writes the save slot. A finished run leaves no slot behind, so it
// cannot be resumed and recorded again.
func (m *Model) persist() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}

	if m.gameState.Finished() {
		m.recordScore()
		m.clearSave()
		return
	}

	data, err := p.SaveState()
	if err != nil {
		m.logger.Error("cannot encode save", "game", m.game.ID(), "err", err)
		return
	}
	if err := m.store.SaveState(m.game.ID(), data); err != nil {
		m.logger.Warn("cannot write save", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Debug("game saved", "game", m.game.ID(), "bytes", len(data))
}

// newRun assigns a fresh run id so the next finished game is recorded once.
func (m *Model) newRun() {
	m.runID = uuid.New()
	m.scoreSaved = false
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("cannot save screenshot", "err", err)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.persist()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prevRun := m.gameState.Run

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Run != prevRun {
		m.newRun()
	}

	m.recordScore()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// clearSave deletes the save slot of the current mode.
func (m *Model) clearSave() {
	if m.store == nil {
		return
	}
	if err := m.store.DeleteState(m.game.ID()); err != nil {
		m.logger.Warn("cannot clear save", "game", m.game.ID(), "err", err)
	}
}

// recordScore saves the score of a finished run, once, and drops its save slot.
func (m *Model) recordScore() {
	if !m.gameState.Finished() || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	m.clearSave()

	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	inserted, err := m.store.SaveScore(m.game.ID(), m.runID, m.gameState.Score, m.gameState.MaxTile)
	if err != nil {
		m.logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("score recorded", "game", m.game.ID(), "score", m.gameState.Score,
		"max_tile", m.gameState.MaxTile, "new", inserted)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, screenshotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}

	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// RunID returns the id under which the current run's score is recorded.
func (m Model) RunID() uuid.UUID {
	return m.runID
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
