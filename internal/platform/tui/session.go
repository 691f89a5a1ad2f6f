package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinoblast/internal/core"
	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
	"github.com/vovakirdan/dinoblast/internal/registry"
	"github.com/vovakirdan/dinoblast/internal/storage"
)

// GameFactory builds a game for a menu selection.
type GameFactory func(sel Selection) registry.Game

// NewGameFactory returns a factory that logs through logger and reports
// finished runs to store. store may be nil.
func NewGameFactory(store *storage.Store, logger *log.Logger) GameFactory {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(sel Selection) registry.Game {
		opts := []dinoblast.Option{
			dinoblast.WithDifficulty(sel.Difficulty),
			dinoblast.WithLogger(logger.With("mode", sel.ModeID)),
		}
		if store != nil {
			opts = append(opts, dinoblast.WithSink(store))
		}
		if sel.ModeID == ModeDaily {
			return dinoblast.NewDaily(opts...)
		}
		return dinoblast.New(opts...)
	}
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionOptions configures a session.
type SessionOptions struct {
	Store   *storage.Store
	Config  core.RuntimeConfig
	Factory GameFactory

	// Start skips the menu and goes straight into a game.
	Start *Selection
}

// SessionModel manages the session flow: menu, game, scoreboard and back.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	factory  GameFactory
	screen   sessionScreen
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session.
func NewSessionModel(opts SessionOptions) SessionModel {
	m := SessionModel{
		store:   opts.Store,
		config:  opts.Config,
		factory: opts.Factory,
		menu:    NewMenuModel(opts.Store, opts.Config.ScreenW, opts.Config.ScreenH),
	}
	if opts.Start != nil {
		m.screen = screenGame
		m.game = NewGameModel(m.factory(*opts.Start), m.config)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.config.Seed = 0 // Fresh seed per run
		m.game = NewGameModel(m.factory(*m.menu.Selected()), m.config)
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local Bubble Tea program for the session.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
