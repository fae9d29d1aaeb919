// Package tui provides the terminal board for arranging a day's courses.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/deckhand/internal/schedule"
	"github.com/javiermolinar/deckhand/internal/tui/commands"
	"github.com/javiermolinar/deckhand/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // A course is picked up
	ModeLabel       // Editing an instructor label
)

func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeLabel:
		return "label"
	default:
		return "normal"
	}
}

// Position is the cursor: a column and a course index within it.
type Position struct {
	Col int
	Row int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx    context.Context
	board  *schedule.Board
	repo   schedule.Repository // optional, enables switching days
	logger *zap.Logger
	copy   func(string) error

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	cursor Position
	mode   Mode
	dirty  bool     // unsaved changes
	days   []string // stored day keys in week order

	// Components
	input textinput.Model

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int // first visible slot row
	colOffset    int // first visible column

	// Messages
	statusMsg  string
	statusKind commands.Level
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger for key and drop events.
func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTheme sets the color theme.
func WithTheme(t *theme.Theme) ModelOption {
	return func(m *Model) {
		if t != nil {
			m.theme = t
		}
	}
}

// WithRepository lets the model open the other stored days with [ and ].
func WithRepository(repo schedule.Repository) ModelOption {
	return func(m *Model) {
		m.repo = repo
	}
}

// WithClipboard replaces the clipboard writer used by the copy key.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		if write != nil {
			m.copy = write
		}
	}
}

// New creates a board model for an opened schedule.Board.
func New(ctx context.Context, board *schedule.Board, opts ...ModelOption) Model {
	input := textinput.New()
	input.Placeholder = "Instructor name"
	input.CharLimit = 40
	input.Prompt = "› "

	m := Model{
		ctx:    ctx,
		board:  board,
		logger: zap.NewNop(),
		copy:   writeClipboard,
		input:  input,
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.theme == nil {
		m.theme, _ = theme.Load("mocha")
	}
	m.styles = NewStyles(m.theme)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.repo != nil {
		cmds = append(cmds, commands.ListDays(m.ctx, m.repo))
	}
	if n := len(m.board.Skipped()); n > 0 {
		cmds = append(cmds, commands.Status(pluralize(n, "roster row")+" skipped", commands.LevelWarning))
	}
	return tea.Batch(cmds...)
}

// Board returns the underlying board.
func (m Model) Board() *schedule.Board {
	return m.board
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the cursor position.
func (m Model) Cursor() Position {
	return m.cursor
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.statusMsg
}

// Dirty reports whether the arrangement has unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

// selected returns the code under the cursor, or "".
func (m Model) selected() string {
	cols := m.board.Columns()
	if m.cursor.Col < 0 || m.cursor.Col >= len(cols) {
		return ""
	}
	col := cols[m.cursor.Col]
	if m.cursor.Row < 0 || m.cursor.Row >= len(col) {
		return ""
	}
	return col[m.cursor.Row].Code
}

// clampCursor keeps the cursor on an existing course.
func (m *Model) clampCursor() {
	cols := m.board.Columns()
	if len(cols) == 0 {
		m.cursor = Position{}
		return
	}
	m.cursor.Col = min(max(m.cursor.Col, 0), len(cols)-1)
	m.cursor.Row = min(max(m.cursor.Row, 0), len(cols[m.cursor.Col])-1)
}

// focus moves the cursor onto code if it is on the board.
func (m *Model) focus(code string) {
	col, row := m.board.Columns().Find(code)
	if col >= 0 {
		m.cursor = Position{Col: col, Row: row}
	}
	m.clampCursor()
}
