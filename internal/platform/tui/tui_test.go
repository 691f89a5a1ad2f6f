package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
	"github.com/vovakirdan/dinoblast/internal/registry"
)

// fakeGame records what the front-end feeds it.
type fakeGame struct {
	resets []core.RuntimeConfig
	inputs []core.InputFrame
	state  core.GameState
}

func (g *fakeGame) ID() string                   { return "dinoblast" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets = append(g.resets, cfg) }
func (g *fakeGame) Render(dst *core.Screen)      { dst.Clear(); dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want []core.Action
		quit bool
	}{
		{press(tea.KeyLeft), []core.Action{core.ActionLeft}, false},
		{runes("d"), []core.Action{core.ActionRight}, false},
		{press(tea.KeyShiftLeft), []core.Action{core.ActionLeft, core.ActionDash}, false},
		{runes("x"), []core.Action{core.ActionRight, core.ActionDash}, false},
		{press(tea.KeySpace), []core.Action{core.ActionLaunch}, false},
		{runes("p"), []core.Action{core.ActionPause}, false},
		{runes("r"), []core.Action{core.ActionRestart}, false},
		{press(tea.KeyEscape), []core.Action{core.ActionBack}, false},
		{runes("q"), []core.Action{core.ActionQuit}, true},
		{runes("?"), nil, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if quit != tt.quit || len(got) != len(tt.want) {
			t.Errorf("%q: got %v quit=%v", tt.msg.String(), got, quit)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.msg.String(), got, tt.want)
			}
		}
	}

	if km.MapKeyToMenuAction(press(tea.KeyTab)) != MenuActionScoreboard {
		t.Error("tab should open the scoreboard")
	}
	if km.MapKeyToMenuAction(runes("j")) != MenuActionDown {
		t.Error("j should move down")
	}
}

func newTestGameModel() (GameModel, *fakeGame) {
	g := &fakeGame{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewGameModel(g, cfg)
	m.Init()
	return m, g
}

func step(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelHoldsDirection(t *testing.T) {
	m, g := newTestGameModel()
	m = step(m, press(tea.KeyLeft))
	for range 10 {
		m = step(m, TickMsg{})
	}

	// 150ms at 60 ticks per second
	for i, in := range g.inputs {
		if held := in.Has(core.ActionLeft); held != (i < 9) {
			t.Errorf("tick %d: left held=%v", i, held)
		}
	}
}

func TestGameModelDashIsOneShot(t *testing.T) {
	m, g := newTestGameModel()
	m = step(m, runes("x"))
	m = step(m, TickMsg{})
	m = step(m, TickMsg{})

	if !g.inputs[0].Has(core.ActionDash) || !g.inputs[0].Has(core.ActionRight) {
		t.Errorf("first tick should dash right: %v", g.inputs[0].Actions)
	}
	if g.inputs[1].Has(core.ActionDash) || !g.inputs[1].Has(core.ActionRight) {
		t.Errorf("second tick should only keep moving: %v", g.inputs[1].Actions)
	}
}

func TestGameModelBackAndRestart(t *testing.T) {
	m, g := newTestGameModel()
	m = step(m, press(tea.KeyEscape))
	if m.BackToMenu() {
		t.Fatal("back must be ignored during play")
	}

	g.state.GameOver = true
	m = step(m, TickMsg{})
	m = step(m, runes("r"))
	m = step(m, TickMsg{})
	if len(g.resets) != 2 {
		t.Fatalf("restart should reset the game, resets=%d", len(g.resets))
	}
	if g.resets[1].Seed == g.resets[0].Seed {
		t.Error("restart should pick a new seed")
	}

	m = step(m, press(tea.KeyEscape))
	if !m.BackToMenu() {
		t.Error("back should work after the run ended")
	}
	if _, cmd := m.Update(TickMsg{}); cmd != nil {
		t.Error("tick loop should stop after leaving the game")
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	m, g := newTestGameModel()
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if len(g.resets) != 1 {
		t.Errorf("resize should not reset, resets=%d", len(g.resets))
	}
	if view := m.View(); !strings.Contains(view, "FAKE") || strings.Count(view, "\n") != 39 {
		t.Errorf("view should fill the new size, got %d lines", strings.Count(view, "\n")+1)
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(nil, 80, 24)
	next, _ := m.Update(press(tea.KeyEnter))
	m = next.(MenuModel)
	if m.Selected() != nil || !strings.Contains(m.View(), "Select difficulty") {
		t.Fatal("campaign should ask for a difficulty")
	}

	next, _ = m.Update(press(tea.KeyDown))
	next, _ = next.Update(press(tea.KeyEnter))
	m = next.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.ModeID != ModeCampaign || sel.Difficulty != config.DifficultyHard {
		t.Errorf("selection: %+v", m.Selected())
	}

	daily := NewMenuModel(nil, 80, 24)
	next, _ = daily.Update(press(tea.KeyDown))
	next, _ = next.Update(press(tea.KeyEnter))
	if sel := next.(MenuModel).Selected(); sel == nil || sel.ModeID != ModeDaily || sel.Difficulty != config.DifficultyNormal {
		t.Errorf("daily selection: %+v", sel)
	}
}

func TestSessionFlow(t *testing.T) {
	g := &fakeGame{}
	var picked []Selection
	s := NewSessionModel(SessionOptions{
		Config: core.DefaultConfig(),
		Factory: func(sel Selection) registry.Game {
			picked = append(picked, sel)
			return g
		},
	})

	send := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	send(press(tea.KeyEnter)) // Campaign
	send(press(tea.KeyEnter)) // Normal
	if s.screen != screenGame || len(picked) != 1 || picked[0].Difficulty != config.DifficultyNormal {
		t.Fatalf("should be in game: screen=%v picked=%v", s.screen, picked)
	}
	if len(g.resets) != 1 {
		t.Errorf("game should start, resets=%d", len(g.resets))
	}

	g.state.GameOver = true
	send(TickMsg{})
	send(press(tea.KeyEscape))
	if s.screen != screenMenu {
		t.Fatalf("should return to the menu, screen=%v", s.screen)
	}

	send(press(tea.KeyTab))
	if s.screen != screenScores || !strings.Contains(s.View(), "No runs recorded yet") {
		t.Fatalf("tab should open the scoreboard, screen=%v", s.screen)
	}
	send(press(tea.KeyEscape))
	if s.screen != screenMenu {
		t.Errorf("esc should leave the scoreboard, screen=%v", s.screen)
	}
}

func TestSessionStartSkipsMenu(t *testing.T) {
	g := &fakeGame{}
	s := NewSessionModel(SessionOptions{
		Config:  core.DefaultConfig(),
		Factory: func(Selection) registry.Game { return g },
		Start:   &Selection{ModeID: ModeCampaign, Difficulty: config.DifficultyEasy},
	})
	if s.Init() == nil || len(g.resets) != 1 {
		t.Error("preselected session should start the game at once")
	}
}

func TestGameFactory(t *testing.T) {
	f := NewGameFactory(nil, nil)
	if id := f(Selection{ModeID: ModeDaily, Difficulty: config.DifficultyNormal}).ID(); id != "dinoblast_daily" {
		t.Errorf("daily factory built %q", id)
	}
	if id := f(Selection{ModeID: ModeCampaign, Difficulty: config.DifficultyHard}).ID(); id != "dinoblast" {
		t.Errorf("campaign factory built %q", id)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(2, 1, "DINO", core.ColorGreen)
	s.SetColored(11, 2, '@', core.Color(200)) // Unknown colors render unstyled

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "plain") || !strings.Contains(lines[1], "DINO") || !strings.Contains(lines[2], "@") {
		t.Errorf("unexpected output %q", out)
	}
}
