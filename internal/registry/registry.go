// Package registry provides a global registry of playable modes.
// Modes register themselves in init() functions, so the shell and the CLI
// can list and start them without importing the game package directly.
package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/core"
)

// ErrUnknownMode is returned by Create for an unregistered mode id.
var ErrUnknownMode = errors.New("unknown mode")

// Game is what the terminal shell drives: pure logic, no Bubble Tea.
// The shell maps keys to actions, ticks at a fixed rate and draws the screen.
type Game interface {
	// ID returns the mode identifier used by the CLI and the score table.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// Resize tells the game the screen size changed. The game keeps its state.
	Resize(width, height int)

	// State returns the current score and status flags.
	State() core.GameState

	// Controls returns a one-line key hint.
	Controls() string
}

// Persistent is implemented by games that can be saved and resumed.
type Persistent interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// Options are passed to a Factory.
type Options struct {
	Config     config.GameConfig
	Logger     *log.Logger
	StartLevel int // Campaign only, 1-based; 0 starts at the first level
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
	Order       int // Menu position, lower first
}

// Factory creates a new game for a mode.
type Factory func(opts Options) Game

type entry struct {
	info    ModeInfo
	factory Factory
}

var (
	modes = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Panics if a mode with the same ID is already registered.
func Register(info ModeInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	modes[info.ID] = entry{info: info, factory: f}
}

// List returns all registered modes in menu order.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the info of a registered mode.
func Lookup(id string) (ModeInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	return e.info, ok
}

// Create instantiates a new game for the given mode.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownMode, id)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return e.factory(opts), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
