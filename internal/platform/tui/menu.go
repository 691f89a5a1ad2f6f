package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
	"github.com/vovakirdan/dinoblast/internal/storage"
)

// Mode IDs offered by the menu.
const (
	ModeCampaign = "dinoblast"
	ModeDaily    = "dinoblast_daily"
)

// Selection is a mode and difficulty picked in the menu.
type Selection struct {
	ModeID     string
	Difficulty config.DifficultyPreset
}

type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryDaily
	entryScores
)

var menuEntries = []struct {
	entry menuEntry
	title string
}{
	{entryCampaign, "Campaign"},
	{entryDaily, "Daily Challenge"},
	{entryScores, "High Scores"},
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel picks campaign or daily mode, then a difficulty for campaign runs.
type MenuModel struct {
	cursor         int
	diffCursor     int
	inDifficulty   bool
	width          int
	height         int
	store          *storage.Store
	tuning         config.DinoBlastConfig
	keyMapper      *KeyMapper
	now            func() time.Time
	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	return MenuModel{
		diffCursor: 1, // normal
		width:      width,
		height:     height,
		store:      store,
		tuning:     config.DefaultDinoBlastConfig(),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inDifficulty {
		return m.handleDifficultyKey(action), nil
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSelect:
		switch menuEntries[m.cursor].entry {
		case entryCampaign:
			m.inDifficulty = true
		case entryDaily:
			// Daily runs share one difficulty so scores are comparable
			m.selected = &Selection{ModeID: ModeDaily, Difficulty: config.DifficultyNormal}
		case entryScores:
			m.openScoreboard = true
		}
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) MenuModel {
	switch action {
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(config.Presets)-1 {
			m.diffCursor++
		}
	case MenuActionBack:
		m.inDifficulty = false
	case MenuActionSelect:
		m.selected = &Selection{ModeID: ModeCampaign, Difficulty: config.Presets[m.diffCursor]}
	}
	return m
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("D I N O B L A S T"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Defend Earth from the marching herd", m.width))
	b.WriteString("\n\n")

	if m.inDifficulty {
		m.viewDifficulty(&b)
	} else {
		m.viewModes(&b)
	}

	return b.String()
}

func (m MenuModel) viewModes(b *strings.Builder) {
	for i, e := range menuEntries {
		line := "  " + e.title
		if i == m.cursor {
			line = menuCursor.Render("> " + e.title)
		}
		if note := m.entryNote(e.entry); note != "" {
			line += "  " + menuHintStyle.Render(note)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
}

// entryNote shows the stored best next to a mode.
func (m MenuModel) entryNote(e menuEntry) string {
	if m.store == nil {
		return ""
	}
	switch e {
	case entryCampaign:
		if hs, err := m.store.HighScore(ModeCampaign); err == nil && hs > 0 {
			return fmt.Sprintf("(best %d)", hs)
		}
	case entryDaily:
		today := dinoblast.Today(m.now())
		if best, ok, err := m.store.DailyBest(today); err == nil && ok {
			return fmt.Sprintf("(%s best %d)", today, best)
		}
		return fmt.Sprintf("(%s)", today)
	}
	return ""
}

func (m MenuModel) viewDifficulty(b *strings.Builder) {
	b.WriteString(centerText("Select difficulty", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		prof := m.tuning.Profile(p)
		text := fmt.Sprintf("%-7s %d hearts", p.Label(), prof.Hearts)
		line := "  " + text
		if i == m.diffCursor {
			line = menuCursor.Render("> " + text)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Start  |  Esc: Back"), m.width))
	b.WriteString("\n")
}

// Selected returns the selection, or nil while the user is still choosing.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
