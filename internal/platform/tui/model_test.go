package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(store *storage.Store) Model {
	game := flappy.NewWithConfig(flappy.ID, config.DefaultFlappyConfig())
	m := NewModel(game, store, nil, testConfig())
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelRecordsRun(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(store)

	m, _ = update(t, m, spaceKey)
	for i := 0; i < 400 && !m.State().GameOver; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("bird without input should crash")
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("journal has %d runs, want 1", len(runs))
	}
	if runs[0].GameID != flappy.ID || runs[0].Cause != "ground" {
		t.Errorf("journaled run = %s/%s, want %s/ground", runs[0].GameID, runs[0].Cause, flappy.ID)
	}
	if m.LastRunID() != runs[0].ID {
		t.Errorf("LastRunID() = %q, want %q", m.LastRunID(), runs[0].ID)
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(nil)

	m, _ = update(t, m, spaceKey)
	for i := 0; i < 400 && !m.State().GameOver; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("run should end without a journal too")
	}
}

func TestModelBack(t *testing.T) {
	t.Run("title screen quits", func(t *testing.T) {
		m := newTestModel(nil)
		m, cmd := update(t, m, escKey)
		if !m.BackToMenu() || cmd == nil {
			t.Error("back on the title screen should leave the program")
		}
	})

	t.Run("embedded stays", func(t *testing.T) {
		m := newTestModel(nil)
		m.embedded = true
		m, cmd := update(t, m, escKey)
		if !m.BackToMenu() || cmd != nil {
			t.Error("embedded model should only flag back")
		}
	})

	t.Run("mid-run ignored", func(t *testing.T) {
		m := newTestModel(nil)
		m, _ = update(t, m, spaceKey)
		m, _ = update(t, m, TickMsg{})
		m, _ = update(t, m, escKey)
		if m.BackToMenu() {
			t.Error("back should be ignored mid-run")
		}
	})
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(nil)
	m.loop = 2

	m, _ = update(t, m, spaceKey)
	m, cmd := update(t, m, TickMsg{Loop: 1})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if !m.game.State().InMenu {
		t.Error("stale tick should not advance the game")
	}

	_, cmd = update(t, m, TickMsg{Loop: 2})
	if cmd == nil {
		t.Error("current tick should schedule the next")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(nil)
	view := m.View()
	if !strings.Contains(view, "Flappy Bird") {
		t.Errorf("view should show the title screen, got:\n%s", view)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, nil, testConfig())

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	// Menu lists flappy first; a progressive game asks for a preset
	step(enterKey)
	if s.stage != stageDifficulty {
		t.Fatalf("stage = %v, want difficulty", s.stage)
	}

	step(enterKey)
	if s.stage != stageGame || s.gameModel == nil {
		t.Fatalf("stage = %v, want game", s.stage)
	}
	if s.gameModel.loop != 1 {
		t.Errorf("first game should run tick loop 1, got %d", s.gameModel.loop)
	}

	step(escKey)
	if s.stage != stageMenu {
		t.Fatalf("back from the title screen should return to the menu, stage = %v", s.stage)
	}

	step(tabKey)
	if s.stage != stageRuns {
		t.Fatalf("tab should open the journal, stage = %v", s.stage)
	}
	if !strings.Contains(s.View(), "unavailable") {
		t.Error("journal without a store should say so")
	}

	step(escKey)
	if s.stage != stageMenu {
		t.Fatalf("back from the journal should return to the menu, stage = %v", s.stage)
	}

	step(runeKey('q'))
	if !s.quitting {
		t.Error("q should end the session")
	}
}

func TestSessionReplay(t *testing.T) {
	store := openTestStore(t)

	// Journal one run through a standalone model
	m := newTestModel(store)
	m, _ = update(t, m, spaceKey)
	for i := 0; i < 400 && !m.State().GameOver; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	s := NewSessionModel(store, nil, testConfig())
	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tabKey)
	step(enterKey)
	if s.stage != stageGame {
		t.Fatalf("picking a run should start its replay, stage = %v", s.stage)
	}
	replay, ok := s.game.(*flappy.Game)
	if !ok || !replay.IsReplay() {
		t.Fatalf("session game = %T, want a flappy replay", s.game)
	}

	for i := 0; i < 400 && !s.gameModel.State().GameOver; i++ {
		step(TickMsg{Loop: s.gameModel.loop})
	}
	if err := replay.ReplayError(); err != nil {
		t.Errorf("replay diverged: %v", err)
	}
}
