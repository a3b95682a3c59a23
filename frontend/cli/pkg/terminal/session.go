package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/backend/question"
)

const errorDisplayDuration = 3 * time.Second

type SessionKeyBindings struct {
	Submit      key.Binding
	NewLine     key.Binding
	Up          key.Binding
	Down        key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	RemoveImage key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func NewSessionKeyBindings() SessionKeyBindings {
	return SessionKeyBindings{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		NewLine: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "new line"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next option"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		RemoveImage: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove last image"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys(tea.KeyCtrlC.String()),
			key.WithHelp("ctrl+c", "close"),
		),
	}
}

// Session is the bubbletea model of one question dialog. Every user action is
// forwarded to the dialog; the program quits once the dialog is resolved.
type Session struct {
	dialog *dialog.Dialog

	answer textarea.Model
	custom textinput.Model
	focus  focus

	width    int
	height   int
	content  string
	errorSeq int

	keyBindings SessionKeyBindings
}

var _ tea.Model = (*Session)(nil)

func NewSession(d *dialog.Dialog) *Session {
	ta := textarea.New()
	ta.Focus()
	ta.CharLimit = 32768
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Prompt = ""
	ta.Placeholder = "Type your answer..."
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 32768
	ti.Placeholder = "Type your own answer..."

	m := &Session{
		dialog:      d,
		answer:      ta,
		custom:      ti,
		focus:       FocusInput,
		width:       80,
		height:      20,
		keyBindings: NewSessionKeyBindings(),
	}
	m.content = renderContent(m.question().Content, m.width)
	m.syncFocus()

	return m
}

func (m *Session) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.question().Title),
		textarea.Blink,
	)
}

func (m *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dialog.State() == dialog.StateResolved {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.onKeyEvent(msg)
	case tea.WindowSizeMsg:
		m.onWindowResize(msg)
	case clearErrorMsg:
		if msg.seq == m.errorSeq {
			m.dialog.ClearError()
		}
	}

	return m, m.updateInput(msg)
}

func (m *Session) onKeyEvent(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		return m.handlePaste(msg)
	}

	switch {
	case key.Matches(msg, m.keyBindings.Quit):
		m.dialog.Close()
		return tea.Quit
	case key.Matches(msg, m.keyBindings.Cancel):
		m.dialog.Cancel(dialog.ReasonEscapeKey)
		return tea.Quit
	case key.Matches(msg, m.keyBindings.NextFocus):
		m.focus = m.focus.next()
		m.syncFocus()
		return nil
	case key.Matches(msg, m.keyBindings.PrevFocus):
		m.focus = m.focus.prev()
		m.syncFocus()
		return nil
	case key.Matches(msg, m.keyBindings.Submit):
		return m.handleSubmit()
	case key.Matches(msg, m.keyBindings.RemoveImage):
		if images := len(m.dialog.View().Images); images > 0 {
			m.dialog.RemoveImage(images - 1)
		}
		return nil
	case m.isChoice() && m.focus == FocusInput && key.Matches(msg, m.keyBindings.Up):
		m.moveSelection(-1)
		return nil
	case m.isChoice() && m.focus == FocusInput && key.Matches(msg, m.keyBindings.Down):
		m.moveSelection(1)
		return nil
	}

	return m.updateInput(msg)
}

func (m *Session) handleSubmit() tea.Cmd {
	if m.focus == FocusCancel {
		m.dialog.Cancel(dialog.ReasonButtonClick)
		return tea.Quit
	}

	if m.dialog.Submit() {
		return tea.Quit
	}

	m.errorSeq++
	seq := m.errorSeq
	return tea.Tick(errorDisplayDuration, func(time.Time) tea.Msg {
		return clearErrorMsg{seq: seq}
	})
}

// handlePaste attaches pasted images and dropped image files. Anything else is
// typed into the focused input.
func (m *Session) handlePaste(msg tea.KeyMsg) tea.Cmd {
	if _, consumed := m.dialog.AttachPaste(string(msg.Runes)); consumed {
		m.syncSelection()
		return nil
	}

	m.focus = FocusInput
	m.syncFocus()
	return m.updateInput(msg)
}

func (m *Session) moveSelection(delta int) {
	view := m.dialog.View()
	if m.dialog.Select(view.Selected + delta) {
		m.syncFocus()
	}
}

// updateInput forwards msg to the active text input and mirrors its value
// into the dialog.
func (m *Session) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if !m.isChoice() {
		m.answer, cmd = m.answer.Update(msg)
		m.dialog.SetText(m.answer.Value())
		return cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyRunes && m.focus == FocusInput && !m.customSelected() {
		m.dialog.FocusCustom()
		m.syncFocus()
	}
	if !m.customSelected() {
		return nil
	}

	m.custom, cmd = m.custom.Update(msg)
	m.dialog.SetText(m.custom.Value())
	return cmd
}

func (m *Session) syncSelection() {
	if m.isChoice() && m.customSelected() {
		m.focus = FocusInput
		m.syncFocus()
	}
}

func (m *Session) syncFocus() {
	inputFocused := m.focus == FocusInput

	if inputFocused && !m.isChoice() {
		m.answer.Focus()
	} else {
		m.answer.Blur()
	}

	if inputFocused && m.isChoice() && m.customSelected() {
		m.custom.Focus()
	} else {
		m.custom.Blur()
	}
}

func (m *Session) onWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	appWidth := max(20, msg.Width-appStyle.GetHorizontalFrameSize())
	inputWidth := appWidth - inputStyle.GetHorizontalFrameSize()
	m.answer.SetWidth(inputWidth)
	m.custom.Width = inputWidth - 4
	m.content = renderContent(m.question().Content, appWidth)
}

func (m *Session) View() string {
	view := m.dialog.View()
	if view.Resolved {
		return ""
	}

	sections := []string{m.headerView(view), m.content}
	if m.isChoice() {
		sections = append(sections, m.choicesView(view))
	} else {
		sections = append(sections, m.inputView(m.answer.View()))
	}

	if attachments := attachmentsView(view.Images); attachments != "" {
		sections = append(sections, attachments)
	}
	if view.Error != "" {
		sections = append(sections, errorStyle.Render(view.Error))
	}

	sections = append(sections, m.buttonsView(), m.helpView())

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Session) headerView(view dialog.View) string {
	kind := "free text"
	if view.Kind == question.KindChoice {
		kind = "single choice"
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render(view.Title),
		bulletSeparatorStyle.Render(" • "),
		kindStyle.Render(kind),
	)
}

func (m *Session) inputView(content string) string {
	if m.focus == FocusInput {
		return inputFocusedStyle.Render(content)
	}
	return inputStyle.Render(content)
}

func (m *Session) choicesView(view dialog.View) string {
	lines := make([]string, 0, len(view.Choices)+1)
	for i, choice := range view.Choices {
		marker, style := "○ ", optionStyle
		if i == view.Selected {
			marker, style = "● ", optionSelectedStyle
		}

		line := style.Render(marker + choice.Label)
		if !choice.Custom && choice.Value != choice.Label {
			line += optionValueStyle.Render(" (" + choice.Value + ")")
		}
		lines = append(lines, line)
	}

	if m.customSelected() {
		lines = append(lines, m.inputView(m.custom.View()))
	}

	return strings.Join(lines, "\n")
}

func (m *Session) buttonsView() string {
	cancel, submit := buttonStyle, buttonStyle
	switch m.focus {
	case FocusCancel:
		cancel = buttonFocusedStyle
	case FocusSubmit:
		submit = buttonFocusedStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		cancel.Render("Cancel"),
		" ",
		submit.Render("Submit"),
	)
}

func attachmentsView(images []dialog.ImageSummary) string {
	if len(images) == 0 {
		return ""
	}

	items := make([]string, 0, len(images))
	for i, image := range images {
		items = append(items, fmt.Sprintf("[%d] %s %s", i+1, image.MIMEType, humanSize(image.Size*3/4)))
	}

	return attachmentStyle.Render("Attached: " + strings.Join(items, ", "))
}

func (m *Session) question() *question.Question {
	if q := m.dialog.Question(); q != nil {
		return q
	}
	return &question.Question{}
}

func (m *Session) isChoice() bool {
	return m.question().IsChoice()
}

func (m *Session) customSelected() bool {
	custom := m.dialog.CustomIndex()
	return custom >= 0 && m.dialog.View().Selected == custom
}

func renderContent(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return contentStyle.Render(content)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return contentStyle.Render(content)
	}

	return strings.Trim(rendered, "\n")
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
