package game

// GameStateType names the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateDialog       GameStateType = "dialog"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism tests and the CLI.
type Snapshot struct {
	Tick    uint64
	Mode    string
	Level   int // 1-indexed campaign level, 0 outside the campaign
	Target  int // Current target tile, 0 in endless mode
	Score   int
	Best    int
	Cells   [][]int
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.dialog != DialogNone:
		state = StateDialog
	case g.anim.animating():
		state = StateAnimating
	}

	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   level,
		Target:  g.target,
		Score:   g.score,
		Best:    g.best,
		Cells:   g.board.Cells(),
		MaxTile: g.board.MaxTile(),
		State:   state,
	}
}
