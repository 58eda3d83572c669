package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/paramclip/internal/state"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 3 * time.Second

const defaultWidth = 80

// EventMsg carries a controller event into the program.
type EventMsg state.Event

// copyDoneMsg is sent when a copy command settles.
type copyDoneMsg struct {
	err error
}

// dismissToastMsg hides the toast with the matching id.
type dismissToastMsg struct {
	id int
}

type toast struct {
	id      int
	message string
	failed  bool
}

// Forward adapts send (usually tea.Program.Send) into a controller
// listener, so timer-driven resets repaint the screen.
func Forward(send func(tea.Msg)) func(state.Event) {
	return func(ev state.Event) {
		send(EventMsg(ev))
	}
}

// AppModel is the paramclip TUI model.
type AppModel struct {
	ctx  context.Context
	ctrl *state.Controller

	keys KeyMap
	help help.Model

	width  int
	height int
	ready  bool

	toast   *toast
	toastID int
}

// NewApp creates the TUI around a mounted controller.
func NewApp(ctx context.Context, ctrl *state.Controller) AppModel {
	return AppModel{
		ctx:  ctx,
		ctrl: ctrl,
		keys: DefaultKeyMap,
		help: help.New(),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.ctrl.ToggleHelp()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			if !m.ctrl.Display().Available {
				return m, nil
			}
			return m, m.copy()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case copyDoneMsg:
		if errors.Is(msg.err, state.ErrNoContent) {
			return m, nil
		}
		m.toastID++
		t := &toast{id: m.toastID, message: state.MessageCopied}
		if msg.err != nil {
			t.message = state.MessageFailed
			t.failed = true
		}
		m.toast = t
		return m, dismissToastAfter(t.id, ToastDuration)

	case dismissToastMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case EventMsg:
		// Controller state changed outside Update (reset timer); the
		// repaint that follows every message is all that is needed.
		return m, nil
	}

	return m, nil
}

func (m AppModel) copy() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return copyDoneMsg{err: ctrl.Copy(ctx)}
	}
}

func dismissToastAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissToastMsg{id: id}
	})
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	width := m.contentWidth()
	display := m.ctrl.Display()

	var b strings.Builder

	b.WriteString(TitleStyle.Render("URL Parameter Display"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Content from your URL parameter will be displayed below with an easy copy option"))
	b.WriteString("\n\n")

	b.WriteString(m.renderCard(display, width))
	b.WriteString("\n\n")

	b.WriteString(m.renderButton(display))
	if m.toast != nil {
		style := ToastStyle
		if m.toast.failed {
			style = ToastErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.toast.message))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderInstructions(width))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ContentStyle.Render(b.String())
}

func (m AppModel) contentWidth() int {
	w := m.width - 4
	if w <= 0 {
		w = defaultWidth
	}
	return w
}

func (m AppModel) renderCard(d state.DisplayState, width int) string {
	badges := BadgeStyle.Render(fmt.Sprintf("%d characters", d.CharCount()))
	if d.LastUpdated != "" {
		badges += " " + HelpStyle.Render(d.LastUpdated)
	}

	header := CardHeaderStyle.Render("Parameter Content")
	gap := width - 4 - lipgloss.Width(header) - lipgloss.Width(badges)
	if gap < 1 {
		gap = 1
	}
	header += strings.Repeat(" ", gap) + badges

	var body string
	switch {
	case d.DecodeErr != nil:
		body = ErrorStyle.Render("Parameter could not be decoded") + "\n" +
			HelpStyle.Render(wrapContent(d.DecodeErr.Error(), width-8)) + "\n" +
			HelpStyle.Render("Check the percent-encoding in the URL; a literal % is written as %25")
	case !d.Available:
		body = EmptyTitleStyle.Render("No Content Found") + "\n" +
			"Add a URL parameter to see content displayed here. For example: " +
			CodeStyle.Render("?content=your-text-here") + "\n" +
			HelpStyle.Render("Parameters are automatically decoded and displayed")
	default:
		body = ContentBoxStyle.Width(width - 6).Render(wrapContent(d.Content, width-12))
	}

	return CardStyle.Width(width).Render(header + "\n" + body)
}

func (m AppModel) renderButton(d state.DisplayState) string {
	switch {
	case !d.Available:
		return ButtonDisabledStyle.Render("Copy to Clipboard")
	case m.ctrl.Copied():
		return ButtonCopiedStyle.Render("✓ Copied!")
	default:
		return ButtonStyle.Render("Copy to Clipboard")
	}
}

func (m AppModel) renderInstructions(width int) string {
	arrow := "▾"
	if m.ctrl.HelpOpen() {
		arrow = "▴"
	}
	toggle := SubtitleStyle.Render("How to use this tool " + arrow)
	if !m.ctrl.HelpOpen() {
		return toggle
	}

	bullets := []string{
		"Add your content as a URL parameter: " + CodeStyle.Render("?content=your-text-here"),
		"Special characters and spaces are automatically handled",
		"Press c, y or enter to copy the content to your clipboard",
		"Also reads text, data, msg and message when content is absent",
	}

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Usage Instructions:"))
	for _, line := range bullets {
		b.WriteString("\n")
		b.WriteString(BulletStyle.Render("→ "))
		b.WriteString(line)
	}

	panelWidth := width
	if panelWidth > 72 {
		panelWidth = 72
	}
	return toggle + "\n" + PanelStyle.Width(panelWidth).Render(b.String())
}
