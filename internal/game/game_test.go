package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tile2048/internal/config"
	"github.com/vovakirdan/tile2048/internal/core"
	"github.com/vovakirdan/tile2048/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame builds a started game with animations off unless modify turns them on.
func newTestGame(t *testing.T, mode Mode, modify func(*config.GameConfig)) *Game {
	t.Helper()

	cfg := config.DefaultGameConfig()
	cfg.Animation.Enabled = false
	if modify != nil {
		modify(&cfg)
	}

	g := New(mode, registry.Options{Config: cfg})
	g.Reset(testRuntime(42))
	return g
}

// setBoard replaces the board contents and drops any running animation.
func setBoard(t *testing.T, g *Game, rows [][]int) {
	t.Helper()

	var values []int
	for _, row := range rows {
		values = append(values, row...)
	}
	if err := g.board.Restore(values); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	g.pending = nil
	g.anim.stop()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestResetStartsNewGame(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)

	if g.board.Occupied() != 2 {
		t.Errorf("Occupied() = %d, want 2", g.board.Occupied())
	}
	state := g.State()
	if state.Score != 0 || state.GameOver || state.Run != 1 {
		t.Errorf("State() = %+v", state)
	}
	if g.target != 2048 {
		t.Errorf("classic target = %d, want 2048", g.target)
	}
}

func TestSpawnsOneTileAfterMove(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	if g.board.Occupied() != 3 {
		t.Errorf("Occupied() = %d, want 3 after one spawn", g.board.Occupied())
	}
	if g.board.Number(0, 0) != 2 || g.board.Number(2, 0) != 4 {
		t.Errorf("tiles did not slide: %v", g.board.Cells())
	}
}

func TestNoSpawnAfterIllegalMove(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := g.board.Cells()

	g.Step(press(core.ActionLeft))

	if !reflect.DeepEqual(g.board.Cells(), before) {
		t.Errorf("illegal move changed the board: %v", g.board.Cells())
	}
}

func TestScoreIsSumOfMerges(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{2, 2, 4, 4},
		{8, 8, 0, 0},
		{0, 0, 0, 0},
		{16, 0, 0, 16},
	})

	g.Step(press(core.ActionLeft))

	want := 4 + 8 + 16 + 32
	if g.Score() != want {
		t.Errorf("Score() = %d, want %d", g.Score(), want)
	}
	if g.Best() != want || !g.ImprovedBest() {
		t.Errorf("Best() = %d, improved = %v", g.Best(), g.ImprovedBest())
	}
}

func TestOnlyOneMovePerTick(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft, core.ActionRight))

	// Left wins by direction order
	if g.board.Number(0, 0) != 2 {
		t.Errorf("expected left move, board = %v", g.board.Cells())
	}
}

func TestGameOverDetection(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Board.Rows, c.Board.Cols = 2, 2
		c.Board.Spawn4Chance = 0
	})
	setBoard(t, g, [][]int{
		{2, 4},
		{0, 8},
	})

	g.Step(press(core.ActionLeft))

	if !g.board.Full() {
		t.Fatalf("board should be full: %v", g.board.Cells())
	}
	if !g.State().GameOver {
		t.Errorf("expected game over on %v", g.board.Cells())
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	// R starts a new run
	g.Step(press(core.ActionRestart))
	if g.State().GameOver || g.State().Run != 2 || g.Score() != 0 {
		t.Errorf("restart failed: %+v", g.State())
	}
}

func TestFullBoardWithMergeIsNotGameOver(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Board.Rows, c.Board.Cols = 2, 2
		c.Board.Spawn4Chance = 1
	})
	setBoard(t, g, [][]int{
		{2, 4},
		{0, 8},
	})

	g.Step(press(core.ActionLeft))

	// Spawned 4 sits under the other 4
	if g.State().GameOver {
		t.Errorf("board %v still has a merge", g.board.Cells())
	}
}

func TestClassicCongratulatesOnce(t *testing.T) {
	g := newTestGame(t, ModeClassic, func(c *config.GameConfig) {
		c.Board.WinTile = 8
	})
	setBoard(t, g, [][]int{
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	if g.Dialog() != DialogCongratulations {
		t.Fatalf("Dialog() = %d, want congratulations", g.Dialog())
	}
	if !g.State().Paused || g.State().Finished() {
		t.Errorf("dialog should pause without ending the run: %+v", g.State())
	}

	// Moves are blocked until the dialog is dismissed
	before := g.board.Cells()
	g.Step(press(core.ActionRight))
	if !reflect.DeepEqual(before, g.board.Cells()) {
		t.Error("move applied under a dialog")
	}

	g.Step(press(core.ActionConfirm))
	if g.Dialog() != DialogNone {
		t.Fatal("Confirm should dismiss the dialog")
	}

	// A second 8 does not show the dialog again
	setBoard(t, g, [][]int{
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(press(core.ActionLeft))
	if g.Dialog() != DialogNone {
		t.Error("congratulations shown twice")
	}
}

func TestEndlessHasNoTarget(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	if g.levelCleared || g.won || g.Dialog() != DialogNone {
		t.Errorf("endless mode should not stop at 2048: %+v", g.Snapshot())
	}
}

func TestNewGameDialog(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	setBoard(t, g, [][]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.setScore(100)

	g.Step(press(core.ActionRestart))
	if g.Dialog() != DialogNewGame {
		t.Fatalf("Dialog() = %d, want new game prompt", g.Dialog())
	}

	g.Step(press(core.ActionBack))
	if g.Dialog() != DialogNone || g.Score() != 100 {
		t.Fatal("Back should keep the current game")
	}

	g.Step(press(core.ActionRestart))
	g.Step(press(core.ActionConfirm))
	if g.Score() != 0 || g.State().Run != 2 || g.board.Occupied() != 2 {
		t.Errorf("confirm should start a new game: %+v", g.State())
	}
	if g.Best() != 100 {
		t.Errorf("Best() = %d, want 100 kept across games", g.Best())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	setBoard(t, g, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.Step(press(core.ActionLeft))
	if g.board.Number(0, 3) != 2 {
		t.Error("moves should be ignored while paused")
	}

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionLeft))
	if g.board.Number(0, 0) != 2 {
		t.Error("move should apply after unpausing")
	}
}

func TestCampaignProgression(t *testing.T) {
	g := newTestGame(t, ModeCampaign, nil)
	if g.target != 128 || g.board.Spawn4Chance() != 0.10 {
		t.Fatalf("level 1 target = %d, spawn4 = %v", g.target, g.board.Spawn4Chance())
	}

	setBoard(t, g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(press(core.ActionLeft))

	if !g.levelCleared {
		t.Fatal("reaching the target should clear the level")
	}
	if g.board.Occupied() != 1 {
		t.Errorf("no tile should spawn on level clear, occupied = %d", g.board.Occupied())
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	for range g.levelClearDelay {
		g.Step(core.NewInputFrame())
	}

	if g.levelIndex != 1 || g.target != 256 {
		t.Errorf("should advance to level 2, got level %d target %d", g.levelIndex+1, g.target)
	}
	if g.Score() != 128 || g.board.Number(0, 0) != 128 {
		t.Error("board and score carry over to the next level")
	}
}

func TestCampaignStartLevelAndCompletion(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Animation.Enabled = false
	g := New(ModeCampaign, registry.Options{Config: cfg, StartLevel: 10})
	g.Reset(testRuntime(7))

	if g.levelIndex != 9 || g.target != 8192 {
		t.Fatalf("start level 10: index %d target %d", g.levelIndex, g.target)
	}

	setBoard(t, g, [][]int{
		{4096, 4096, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(press(core.ActionLeft))
	for range g.levelClearDelay {
		g.Step(core.NewInputFrame())
	}

	if !g.State().Won || !g.State().Finished() {
		t.Errorf("clearing the last level should win: %+v", g.State())
	}
}

func TestStartLevelOutOfRange(t *testing.T) {
	for _, level := range []int{-1, 0, 11} {
		if startIndex(level) != 0 {
			t.Errorf("startIndex(%d) = %d, want 0", level, startIndex(level))
		}
	}
	if GetLevel(LevelCount()) != nil || GetLevel(0).Name != "Warm-up" {
		t.Error("GetLevel() bounds")
	}
}

func TestAnimationDelaysSpawn(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Animation = config.AnimationConfig{Enabled: true, SlideTicks: 3, PopTicks: 2}
	})
	setBoard(t, g, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionRight))
	if !g.Animating() || g.anim.phase != PhaseSlide {
		t.Fatalf("slide should be playing, phase = %s", g.anim.phase)
	}
	if g.board.Number(0, 3) != 2 {
		t.Fatal("board updates before the animation")
	}

	// Input during the slide is dropped
	g.Step(press(core.ActionLeft))
	if g.board.Number(0, 3) != 2 {
		t.Error("move accepted during animation")
	}
	g.Step(core.NewInputFrame())
	if g.board.Occupied() != 1 {
		t.Errorf("spawned before the slide finished, occupied = %d", g.board.Occupied())
	}

	g.Step(core.NewInputFrame())
	if g.board.Occupied() != 2 {
		t.Errorf("expected spawn when the slide ends, occupied = %d", g.board.Occupied())
	}
	if g.anim.phase != PhasePop {
		t.Errorf("phase = %s, want pop", g.anim.phase)
	}

	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if g.Animating() {
		t.Error("pop should be finished")
	}
}

func TestAnimatorRunsContinuationOnce(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Animation = config.AnimationConfig{Enabled: true, SlideTicks: 2, PopTicks: 2}
	})

	calls := 0
	g.play(PhaseSlide, []TileAnimation{{Value: 2}}, func() { calls++ })
	for range 5 {
		g.anim.update()
	}
	if calls != 1 {
		t.Errorf("continuation ran %d times, want 1", calls)
	}

	// Nothing to animate: runs at once
	g.play(PhasePop, nil, func() { calls++ })
	if calls != 2 || g.Animating() {
		t.Errorf("empty phase should run its continuation immediately, calls = %d", calls)
	}
}

func TestSlideRecordsMergeAnimations(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Animation = config.AnimationConfig{Enabled: true, SlideTicks: 4, PopTicks: 2}
	})
	setBoard(t, g, [][]int{
		{0, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(press(core.ActionLeft))

	// One slide into (0,0), then the merge onto it; no extra stationary tile
	if len(g.anim.tiles) != 2 {
		t.Fatalf("slide tiles = %+v", g.anim.tiles)
	}
	for _, a := range g.anim.tiles {
		if a.Value != 2 || a.To.Col != 0 {
			t.Errorf("unexpected slide %+v", a)
		}
	}
	if len(g.merged) != 1 {
		t.Errorf("merged = %v", g.merged)
	}
}

func TestDeterminism(t *testing.T) {
	moves := []core.Action{
		core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionRight,
	}

	play := func() Snapshot {
		g := newTestGame(t, ModeEndless, nil)
		for _, a := range moves {
			g.Step(press(a))
		}
		return g.Snapshot()
	}

	s1, s2 := play(), play()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed and input should match:\n%+v\nvs\n%+v", s1, s2)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGame(t, ModeCampaign, nil)
	setBoard(t, g, [][]int{
		{2, 4, 8, 16},
		{0, 0, 0, 0},
		{0, 32, 0, 0},
		{0, 0, 0, 2},
	})
	g.setScore(1234)
	g.levelIndex = 3

	data, err := g.SaveState()
	if err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	if len(data) != 8+16*4+4 {
		t.Fatalf("record size = %d", len(data))
	}

	restored := newTestGame(t, ModeCampaign, nil)
	if err := restored.LoadState(data); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}

	if !reflect.DeepEqual(restored.board.Cells(), g.board.Cells()) {
		t.Errorf("board = %v, want %v", restored.board.Cells(), g.board.Cells())
	}
	if restored.Score() != 1234 || restored.Best() != 1234 {
		t.Errorf("score = %d, best = %d", restored.Score(), restored.Best())
	}
	if restored.levelIndex != 3 || restored.target != 1024 {
		t.Errorf("level = %d, target = %d", restored.levelIndex+1, restored.target)
	}
}

func TestLoadEmptyBoardStartsNewGame(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	setBoard(t, g, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.best = 500
	g.score = 0

	data, err := g.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	restored := newTestGame(t, ModeClassic, nil)
	if err := restored.LoadState(data); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	if restored.board.Occupied() != 2 || restored.Best() != 500 {
		t.Errorf("occupied = %d, best = %d", restored.board.Occupied(), restored.Best())
	}
}

func TestLoadStuckBoardIsGameOver(t *testing.T) {
	g := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Board.Rows, c.Board.Cols = 2, 2
	})
	setBoard(t, g, [][]int{
		{2, 4},
		{8, 2},
	})
	data, _ := g.SaveState()

	restored := newTestGame(t, ModeEndless, func(c *config.GameConfig) {
		c.Board.Rows, c.Board.Cols = 2, 2
	})
	if err := restored.LoadState(data); err != nil {
		t.Fatal(err)
	}
	if !restored.State().GameOver {
		t.Error("stuck board should load as game over")
	}
}

func TestLoadStateMismatch(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	before := g.board.Cells()

	for _, size := range []int{0, 7, 8 + 15*4, 8 + 16*4 + 4} {
		err := g.LoadState(make([]byte, size))
		if !errors.Is(err, ErrSaveMismatch) {
			t.Errorf("LoadState(%d bytes) error = %v, want ErrSaveMismatch", size, err)
		}
	}
	if !reflect.DeepEqual(g.board.Cells(), before) {
		t.Error("rejected record must not change the board")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	setBoard(t, g, [][]int{
		{2, 0, 0, 0},
		{0, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 16384},
	})
	g.setScore(77)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Score: 77", "Best: 77", "16384", "Goal: 2048", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, ModeEndless, nil)
	g.gameOver = true

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	g.Resize(20, 10)

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
	if !g.State().Paused {
		t.Error("too-small window should pause the game")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize back should resume")
	}
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{"classic", "campaign", "endless"} {
		game, err := registry.Create(id, registry.Options{Config: config.DefaultGameConfig()})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if game.ID() != id {
			t.Errorf("ID() = %q, want %q", game.ID(), id)
		}
		if _, ok := game.(registry.Persistent); !ok {
			t.Errorf("%s should be persistent", id)
		}
	}
}
