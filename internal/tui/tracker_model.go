package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/camgriff/feyfocus/internal/export"
	"github.com/camgriff/feyfocus/internal/tracker"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusInput
)

// editField says which column the input is editing
type editField int

const (
	editNone editField = iota
	editProject
	editNotes
)

// refreshTickMsg re-renders the table from the latest snapshot
type refreshTickMsg struct{}

// noticeMsg carries a scheduler notice into the UI
type noticeMsg tracker.Notice

// TrackerModel is the TUI model for the live document table
type TrackerModel struct {
	width  int
	height int

	sched      *tracker.Scheduler
	trk        *tracker.Tracker
	notices    chan tracker.Notice
	exportPath string

	// Latest snapshot of the collection
	docs        []tracker.TrackedDocument
	selectedDoc int

	// UI state
	focus   Focus
	editing editField
	input   textinput.Model

	// Transient notice line
	alert      string
	alertIsErr bool

	// Two-step confirmation for clearing all data
	confirmClear bool

	// Pagination
	currentPage int
	docsPerPage int
}

// NewTrackerModel creates the document table model
func NewTrackerModel(sched *tracker.Scheduler, trk *tracker.Tracker, notices chan tracker.Notice, exportPath string) TrackerModel {
	input := textinput.New()
	input.Width = 60

	// Apply color scheme
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TrackerModel{
		sched:       sched,
		trk:         trk,
		notices:     notices,
		exportPath:  exportPath,
		docs:        trk.Snapshot(),
		focus:       FocusTable,
		editing:     editNone,
		input:       input,
		docsPerPage: 10,
	}
}

// Init starts the refresh ticker and the notice listener
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(refreshTick(), waitForNotice(m.notices))
}

func refreshTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func waitForNotice(notices chan tracker.Notice) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-notices)
	}
}

// Update handles messages
func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		m.docs = m.trk.Snapshot()
		if m.selectedDoc >= len(m.docs) && len(m.docs) > 0 {
			m.selectedDoc = len(m.docs) - 1
		}
		return m, refreshTick()

	case noticeMsg:
		m.alert = msg.Text
		m.alertIsErr = msg.Err
		return m, waitForNotice(m.notices)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(2) - column header(2) - pagination(1) - help(1) -
		// alert(1) - margins(4) = rows available for documents
		availableHeight := m.height - 11
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.docsPerPage = availableHeight
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusInput {
			return m.handleInputKeys(msg)
		}
		return m.handleTableKeys(msg)
	}

	return m, nil
}

// handleTableKeys handles key input while the table has focus
func (m TrackerModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than a second 'c' cancels the pending clear
	if m.confirmClear && msg.String() != "c" {
		m.confirmClear = false
		m.alert = ""
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		// Final save happens on shutdown, after the program exits
		return m, tea.Quit

	case "up", "k":
		return m.moveSelectionUp(), nil

	case "down", "j":
		return m.moveSelectionDown(), nil

	case "left", "h":
		return m.prevPage(), nil

	case "right", "l":
		return m.nextPage(), nil

	case "p":
		return m.startEditing(editProject), nil

	case "n":
		return m.startEditing(editNotes), nil

	case "s":
		m.sched.SaveNow()
		return m, nil

	case "x":
		if err := export.WriteFile(m.exportPath, m.trk.Snapshot()); err != nil {
			m.alert = err.Error()
			m.alertIsErr = true
		} else {
			m.alert = fmt.Sprintf("Exported to %s", m.exportPath)
			m.alertIsErr = false
		}
		return m, nil

	case "c":
		if !m.confirmClear {
			m.confirmClear = true
			m.alert = "Press c again to delete ALL tracked data"
			m.alertIsErr = true
			return m, nil
		}
		m.confirmClear = false
		m.sched.ClearAll()
		m.docs = nil
		m.selectedDoc = 0
		m.currentPage = 0
		m.alert = "All tracked data cleared"
		m.alertIsErr = false
		return m, nil
	}

	return m, nil
}

// startEditing opens the inline input over the selected document's field
func (m TrackerModel) startEditing(field editField) TrackerModel {
	if len(m.docs) == 0 || m.selectedDoc >= len(m.docs) {
		return m
	}

	doc := m.docs[m.selectedDoc]
	switch field {
	case editProject:
		m.input.Placeholder = "Project name (empty to unassign)"
		m.input.SetValue(doc.Project)
	case editNotes:
		m.input.Placeholder = "Notes"
		m.input.SetValue(doc.Notes)
	}

	m.editing = field
	m.focus = FocusInput
	m.input.Focus()
	m.input.CursorEnd()
	return m
}

// handleInputKeys handles key input while editing a field
func (m TrackerModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Discard the edit
		m.focus = FocusTable
		m.editing = editNone
		m.input.Blur()
		return m, nil

	case "enter":
		if m.selectedDoc < len(m.docs) {
			name := m.docs[m.selectedDoc].Name
			value := m.input.Value()

			// Edits go through the tracker's serialized update path;
			// they are persisted with the next save
			switch m.editing {
			case editProject:
				m.trk.SetProject(name, value)
			case editNotes:
				m.trk.SetNotes(name, value)
			}
			m.docs = m.trk.Snapshot()
		}
		m.focus = FocusTable
		m.editing = editNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveSelectionUp moves the selection up
func (m TrackerModel) moveSelectionUp() TrackerModel {
	if m.selectedDoc > 0 {
		m.selectedDoc--

		// Auto-pagination: if we scrolled above current page, go to previous page
		currentPageStart := m.currentPage * m.docsPerPage
		if m.selectedDoc < currentPageStart && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m TrackerModel) moveSelectionDown() TrackerModel {
	if m.selectedDoc < len(m.docs)-1 {
		m.selectedDoc++

		// Auto-pagination: if we scrolled below current page, go to next page
		currentPageEnd := min((m.currentPage+1)*m.docsPerPage-1, len(m.docs)-1)
		maxPages := (len(m.docs) + m.docsPerPage - 1) / m.docsPerPage
		if m.selectedDoc > currentPageEnd && m.currentPage < maxPages-1 {
			m.currentPage++
		}
	}
	return m
}

// prevPage goes to previous page
func (m TrackerModel) prevPage() TrackerModel {
	if m.currentPage > 0 {
		m.currentPage--
		minIndex := m.currentPage * m.docsPerPage
		if m.selectedDoc < minIndex {
			m.selectedDoc = minIndex
		}
		maxIndex := min((m.currentPage+1)*m.docsPerPage-1, len(m.docs)-1)
		if m.selectedDoc > maxIndex {
			m.selectedDoc = maxIndex
		}
	}
	return m
}

// nextPage goes to next page
func (m TrackerModel) nextPage() TrackerModel {
	maxPages := (len(m.docs) + m.docsPerPage - 1) / m.docsPerPage
	if m.currentPage < maxPages-1 {
		m.currentPage++
		minIndex := m.currentPage * m.docsPerPage
		if m.selectedDoc < minIndex {
			m.selectedDoc = minIndex
		}
		maxIndex := min((m.currentPage+1)*m.docsPerPage-1, len(m.docs)-1)
		if m.selectedDoc > maxIndex {
			m.selectedDoc = maxIndex
		}
	}
	return m
}

// View renders the TUI
func (m TrackerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	table := m.renderDocumentTable()
	pagination := m.renderPagination()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"", // Small top margin
		header,
		"",
		table,
		pagination,
		"",
		footer,
	)
}

func (m TrackerModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	appStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	return titleStyle.Render("⏱  feyfocus") + "  " + appStyle.Render(m.sched.App())
}

// renderDocumentTable renders the current page of tracked documents
func (m TrackerModel) renderDocumentTable() string {
	var b strings.Builder

	if len(m.docs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No documents observed yet — open one in the monitored application"))
		return b.String()
	}

	// Column widths within the available space
	availableWidth := m.width - 4
	timeWidth := 10
	nameWidth := availableWidth * 35 / 100
	projectWidth := availableWidth * 20 / 100
	notesWidth := availableWidth - nameWidth - timeWidth - projectWidth - 6
	if nameWidth < 20 {
		nameWidth = 20
	}
	if notesWidth < 10 {
		notesWidth = 10
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "DOCUMENT",
		timeWidth, "MINUTES",
		projectWidth, "PROJECT",
		notesWidth, "NOTES")))
	b.WriteString("\n")

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	start := m.currentPage * m.docsPerPage
	end := min(start+m.docsPerPage, len(m.docs))

	for i := start; i < end; i++ {
		doc := m.docs[i]
		row := fmt.Sprintf("%-*s %-*d %-*s %-*s",
			nameWidth, truncate(doc.Name, nameWidth-1),
			timeWidth, int(doc.AccruedMinutes),
			projectWidth, truncate(doc.Project, projectWidth-1),
			notesWidth, truncate(doc.Notes, notesWidth-1))

		if i == m.selectedDoc {
			b.WriteString(selectedStyle.Render("› " + row))
		} else {
			b.WriteString(rowStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m TrackerModel) renderPagination() string {
	if len(m.docs) <= m.docsPerPage {
		return ""
	}
	maxPages := (len(m.docs) + m.docsPerPage - 1) / m.docsPerPage
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	return style.Render(fmt.Sprintf("page %d/%d", m.currentPage+1, maxPages))
}

// renderFooter shows the edit input, an active alert, or the help line
func (m TrackerModel) renderFooter() string {
	if m.focus == FocusInput {
		label := "Project"
		if m.editing == editNotes {
			label = "Notes"
		}
		labelStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentMain))
		return labelStyle.Render(label+": ") + m.input.View()
	}

	if m.alert != "" {
		color := ColorSuccess
		if m.alertIsErr {
			color = ColorError
		}
		alertStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		return alertStyle.Render(m.alert)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	return helpStyle.Render("↑/↓ select • p project • n notes • s save • x export • c clear • q quit")
}

// truncate shortens s to fit in width runes
func truncate(s string, width int) string {
	if width < 4 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// Helper function for min
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
