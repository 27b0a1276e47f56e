// Package tui provides a terminal event browser for MIDI and SysEx files
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/james-see/smfview/pkg/config"
	"github.com/james-see/smfview/pkg/loader"
	"github.com/james-see/smfview/pkg/viewer"
)

// Acid-inspired color scheme
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2)

	infoStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(1)

	filterStyle = lipgloss.NewStyle().
			Foreground(acidYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateFilePicker State = iota
	StateLoading
	StateTable
	StateError
)

// AllTracks is the track filter value that merges every track by time
const AllTracks = -1

// columnWidths match viewer.ColumnTitles
var columnWidths = []int{5, 8, 6, 9, 20, 18, 14, 6, 26}

// Model represents the TUI model
type Model struct {
	state      State
	filePicker filepicker.Model
	spinner    spinner.Model
	table      table.Model
	formatter  *viewer.Formatter
	drums      viewer.ChannelSet
	path       string
	file       *loader.File
	track      int
	err        error
	width      int
	height     int
}

// fileLoadedMsg signals that a file finished parsing
type fileLoadedMsg struct {
	file *loader.File
	err  error
}

// New creates a TUI model. An empty path starts in the file picker.
func New(cfg *config.Config, path string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = loader.Extensions
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(acidGreen)

	cols := make([]table.Column, len(viewer.ColumnTitles))
	for i, title := range viewer.ColumnTitles {
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(acidGreen).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(darkGray).
		Background(acidGreen)
	t.SetStyles(styles)

	m := Model{
		state:      StateFilePicker,
		filePicker: fp,
		spinner:    s,
		table:      t,
		formatter:  cfg.Formatter(),
		drums:      cfg.Drums(),
		path:       path,
		track:      AllTracks,
	}
	if path != "" {
		m.state = StateLoading
	}
	return m
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return tea.Batch(m.spinner.Tick, loadFile(m.path))
	}
	return m.filePicker.Init()
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := loader.Load(path)
		return fileLoadedMsg{file: f, err: err}
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				if m.file != nil {
					m.state = StateTable
				}
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.resize(size)
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.path = path
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, loadFile(path))
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateTable:
			return m.updateTable(msg)
		case StateError:
			return m.updateError(msg)
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fileLoadedMsg:
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		m.file = msg.file
		m.track = AllTracks
		m.err = nil
		m.state = StateTable
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.filePicker.SetHeight(max(msg.Height-10, 5))
	m.table.SetHeight(max(msg.Height-12, 5))
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		m.nextTrack()
		return m, nil
	case "a":
		m.track = AllTracks
		m.refresh()
		return m, nil
	case "o":
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "o":
		m.err = nil
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// nextTrack moves the filter to the following track, wrapping to the first
func (m *Model) nextTrack() {
	if m.file == nil || m.file.TrackCount == 0 {
		return
	}
	m.track++
	if m.track >= m.file.TrackCount {
		m.track = 0
	}
	m.refresh()
}

// refresh rebuilds the table rows for the current track filter
func (m *Model) refresh() {
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m Model) rows() []table.Row {
	if m.file == nil {
		return nil
	}

	var records []viewer.DisplayRecord
	if m.track == AllTracks {
		records = m.formatter.FormatAll(m.file.Events, m.drums)
		viewer.SortByTime(records)
	} else {
		records = m.formatter.FormatAll(m.file.Track(m.track), m.drums)
	}

	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Columns()
	}
	return rows
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SMFVIEW "))
	s.WriteString("\n\n")

	switch m.state {
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateLoading:
		s.WriteString(m.viewLoading())
	case StateTable:
		s.WriteString(m.viewTable())
	case StateError:
		s.WriteString(m.viewError())
	}

	return s.String()
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(infoStyle.Render("Select a MIDI or SysEx file"))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	help := "q: quit"
	if m.file != nil {
		help = "esc: back to events • " + help
	}
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

func (m Model) viewLoading() string {
	return boxStyle.Render(fmt.Sprintf("%s Loading %s...", m.spinner.View(), filepath.Base(m.path)))
}

func (m Model) viewTable() string {
	var s strings.Builder

	s.WriteString(infoStyle.Render(m.header()))
	s.WriteString("\n")
	s.WriteString(filterStyle.Render(" " + m.filterLabel()))
	s.WriteString("\n\n")
	s.WriteString(m.table.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: scroll • t: next track • a: all tracks • o: open • q: quit"))

	return s.String()
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Failed to load %s: %s", filepath.Base(m.path), m.err)))
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to pick another file"))

	return boxStyle.Render(s.String())
}

func (m Model) header() string {
	f := m.file
	parts := []string{
		f.Name,
		humanize.Bytes(uint64(f.Size)),
		string(f.Format),
	}
	if f.Format == loader.FormatMIDI {
		parts = append(parts, fmt.Sprintf("type %d", f.SMFFormat), f.TimeFormat)
	}
	parts = append(parts,
		fmt.Sprintf("%d tracks", f.TrackCount),
		humanize.Comma(int64(len(f.Events)))+" events",
	)
	if f.Tempo > 0 {
		parts = append(parts, fmt.Sprintf("%.2f BPM", f.Tempo))
	}
	return strings.Join(parts, " • ")
}

func (m Model) filterLabel() string {
	if m.track == AllTracks {
		return "All tracks, merged by time"
	}
	label := fmt.Sprintf("Track %d/%d", m.track, m.file.TrackCount)
	if m.track < len(m.file.TrackNames) && m.file.TrackNames[m.track] != "" {
		label += ": " + m.file.TrackNames[m.track]
	}
	return label
}

// Run starts the TUI application
func Run(cfg *config.Config, path string) error {
	p := tea.NewProgram(New(cfg, path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
