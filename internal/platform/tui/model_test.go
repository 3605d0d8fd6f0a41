package tui

import (
	"encoding/binary"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/game"
	"github.com/vovakirdan/tile2048/internal/registry"
	"github.com/vovakirdan/tile2048/internal/storage"
)

func testConfig(rows, cols int) config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Board.Rows = rows
	cfg.Board.Cols = cols
	cfg.Animation.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, mode game.Mode, cfg config.GameConfig) *game.Game {
	t.Helper()

	g, err := registry.Create(string(mode), registry.Options{Config: cfg})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return g.(*game.Game)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

// record encodes a save record for an endless board.
func record(best, score int, cells ...int) []byte {
	var data []byte
	data = binary.BigEndian.AppendUint32(data, uint32(best))
	data = binary.BigEndian.AppendUint32(data, uint32(score))
	for _, v := range cells {
		data = binary.BigEndian.AppendUint32(data, uint32(v))
	}
	return data
}

func TestModelSavesOnQuitAndResumes(t *testing.T) {
	store := openStore(t)
	cfg := testConfig(4, 4)

	first := newTestGame(t, game.ModeEndless, cfg)
	m := NewModel(first, store, nil, testRuntime)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, TickMsg{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, TickMsg{})
	m = send(t, m, runeKey("q"))

	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
	if _, ok, _ := store.LoadState("endless"); !ok {
		t.Fatal("quitting should write the save slot")
	}

	second := newTestGame(t, game.ModeEndless, cfg)
	NewModel(second, store, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})

	if !reflect.DeepEqual(first.Board().Cells(), second.Board().Cells()) {
		t.Errorf("resumed board = %v, want %v", second.Board().Cells(), first.Board().Cells())
	}
	if second.Score() != first.Score() {
		t.Errorf("resumed score = %d, want %d", second.Score(), first.Score())
	}
}

func TestModelDropsMismatchedSave(t *testing.T) {
	store := openStore(t)
	if err := store.SaveState("endless", []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t, game.ModeEndless, testConfig(4, 4))
	NewModel(g, store, nil, testRuntime)

	if g.Board().Occupied() != 2 {
		t.Errorf("bad save should leave a fresh game, occupied = %d", g.Board().Occupied())
	}
	if _, ok, _ := store.LoadState("endless"); ok {
		t.Error("bad save should be deleted")
	}
}

func TestModelRecordsScoreOncePerRun(t *testing.T) {
	store := openStore(t)
	if err := store.SaveState("endless", record(0, 40, 2, 4, 8, 8)); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("endless", uuid.New(), 30, 4); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(2, 2)
	cfg.Board.Spawn4Chance = 0
	g := newTestGame(t, game.ModeEndless, cfg)
	m := NewModel(g, store, nil, testRuntime)
	if m.State().GameOver {
		t.Fatal("resumed board still has a move")
	}

	// 8+8 merges, a 2 fills the gap and the board is stuck
	firstRun := m.RunID()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, TickMsg{})
	m = send(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatalf("expected game over on %v", g.Board().Cells())
	}
	if g.Best() != 56 {
		t.Errorf("Best() = %d, want 56", g.Best())
	}

	scores, err := store.AllScores("endless")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[0].Score != 56 || scores[0].MaxTile != 16 || scores[0].RunID != firstRun {
		t.Fatalf("scores = %+v", scores)
	}
	if _, ok, _ := store.LoadState("endless"); ok {
		t.Error("finished run should not keep a save slot")
	}

	m = send(t, m, runeKey("r"))
	m = send(t, m, TickMsg{})
	if m.State().GameOver || m.State().Run != 2 {
		t.Fatalf("restart failed: %+v", m.State())
	}
	if m.RunID() == firstRun {
		t.Error("new run should get a new id")
	}
}

func TestModelRecordsFinishedSaveOnce(t *testing.T) {
	store := openStore(t)
	if err := store.SaveState("classic", record(0, 12, 2, 4, 4, 2)); err != nil {
		t.Fatal(err)
	}

	for launch := range 3 {
		g := newTestGame(t, game.ModeClassic, testConfig(2, 2))
		m := NewModel(g, store, nil, testRuntime)
		if launch == 0 && !m.State().GameOver {
			t.Fatal("stuck save should resume as game over")
		}
		m = send(t, m, TickMsg{})
		send(t, m, runeKey("q"))
	}

	scores, err := store.AllScores("classic")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 12 {
		t.Fatalf("finished game recorded %d times: %+v", len(scores), scores)
	}
}

func TestModelQuitAfterGameOverClearsSave(t *testing.T) {
	store := openStore(t)
	if err := store.SaveState("endless", record(0, 0, 2, 4, 4, 2)); err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t, game.ModeEndless, testConfig(2, 2))
	m := NewModel(g, store, nil, testRuntime)
	send(t, m, runeKey("q"))

	if _, ok, _ := store.LoadState("endless"); ok {
		t.Error("quitting a finished game should delete the save slot")
	}
	if scores, _ := store.AllScores("endless"); len(scores) != 0 {
		t.Errorf("zero score should not be recorded: %+v", scores)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, game.ModeClassic, testConfig(4, 4))
	m := NewModel(g, nil, nil, testRuntime)
	before := g.Board().Cells()

	m = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("expected too-small message")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !reflect.DeepEqual(g.Board().Cells(), before) {
		t.Error("resize should not reset the board")
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Error("expected the board after growing the window")
	}
}

func TestRenderScreenGroupsColors(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "abcd") {
		t.Errorf("same-colored runs should be rendered together: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "xyz") {
		t.Errorf("default color should be unstyled: %q", lines[1])
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m := NewMenuModel(testRuntime, config.DifficultyNormal)

	// Move to the level select entry
	idx := -1
	for i, item := range m.items {
		if item.LevelSelect {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("menu should offer campaign level select")
	}

	var next tea.Model = m
	for range idx {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRight})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := next.(MenuModel).Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.ModeID != "campaign" || sel.Level != 3 || sel.Difficulty != config.DifficultyHard {
		t.Errorf("selection = %+v", sel)
	}
}
