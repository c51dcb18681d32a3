package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelayers"
	"github.com/SeamusWaldron/cubelayers/internal/anim"
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/render"
	"github.com/SeamusWaldron/cubelayers/internal/turn"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube (default)",
	Long: `Open the interactive view.

Keyboard shortcuts:
  U D L R F B M E S   - Turn a slice (lower case turns it back)
  tab / shift+tab     - Cycle between the cube and the layer views
  arrows              - Move the cursor in a layer view
  space / enter       - Pick up the cubie under the cursor, or drop it
  1-4                 - Toggle top, mid, bot and bay as active layers
  ctrl+r              - Reset the cube
  ctrl+p              - Replay your turns in reverse
  ctrl+t              - Run the two-layer solve demo
  ?                   - Show or hide the introduction
  esc                 - Cancel a drag, or quit
  q / ctrl+c          - Quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Messages
type frameMsg anim.Frame
type changeMsg cubelayers.Event
type noticeMsg string
type doneMsg struct{ err error }

// sender forwards session callbacks into the running program. Callbacks
// only fire from command goroutines, never inside Update.
type sender struct {
	p atomic.Pointer[tea.Program]
}

func (s *sender) Send(msg tea.Msg) {
	if p := s.p.Load(); p != nil {
		p.Send(msg)
	}
}

// Model
type playModel struct {
	ctx     context.Context
	session *cubelayers.Session

	view   int
	cursor int
	frame  *anim.Frame
	last   []turn.Token

	notice   string
	err      error
	showHelp bool
	quitting bool

	width  int
	height int
}

func newPlayModel(ctx context.Context, s *cubelayers.Session) *playModel {
	return &playModel{ctx: ctx, session: s, showHelp: true}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

// do runs fn off the update loop and reports its error.
func (m *playModel) do(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: fn(m.ctx)}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.Resize(render.SceneView, msg.Width, msg.Height)

	case frameMsg:
		f := anim.Frame(msg)
		m.frame = &f

	case changeMsg:
		e := cubelayers.Event(msg)
		m.frame = nil
		if e.Kind == cubelayers.EventTurn {
			m.last = append(m.last, e.Token)
			if len(m.last) > 20 {
				m.last = m.last[len(m.last)-20:]
			}
		}
		if e.Kind == cubelayers.EventReset || e.Kind == cubelayers.EventDemo {
			m.last = nil
		}
		m.clampCursor()

	case noticeMsg:
		m.notice = string(msg)

	case doneMsg:
		m.frame = nil
		m.err = nil
		switch {
		case msg.err == nil:
		case errors.Is(msg.err, cubelayers.ErrNoOp), errors.Is(msg.err, cubelayers.ErrPrecondition):
			// The session already explained why.
		case errors.Is(msg.err, cubelayers.ErrBusy):
			m.notice = "Busy - wait for the current move to finish."
		default:
			m.err = msg.err
		}
		m.clampCursor()
	}
	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.quitting = true
		return tea.Quit

	case "esc":
		if _, dragging := s.Dragging(); dragging {
			s.CancelDrag()
			return nil
		}
		m.quitting = true
		return tea.Quit

	case "?":
		m.showHelp = !m.showHelp

	case "tab":
		m.view = (m.view + 1) % len(views)
		m.clampCursor()

	case "shift+tab":
		m.view = (m.view + len(views) - 1) % len(views)
		m.clampCursor()

	case "left", "right", "up", "down":
		m.moveCursor(key)

	case " ", "enter":
		return m.pickOrDrop()

	case "1", "2", "3", "4":
		k := layer.Keys[int(key[0]-'1')]
		return m.do(func(context.Context) error { return s.ToggleLayer(k) })

	case "ctrl+r":
		return m.do(func(context.Context) error { return s.Reset() })

	case "ctrl+p":
		return m.do(func(ctx context.Context) error {
			_, err := s.ReverseAndReplay(ctx)
			return err
		})

	case "ctrl+t":
		m.showHelp = false
		return m.do(func(ctx context.Context) error {
			_, err := s.RunTwoLayerSolveDemo(ctx)
			return err
		})

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			tok := turn.Token(msg.Runes[0])
			if tok.Valid() {
				m.showHelp = false
				return m.do(func(ctx context.Context) error { return s.ApplyTurn(ctx, tok) })
			}
		}
	}
	return nil
}

func (m *playModel) pickOrDrop() tea.Cmd {
	k, ok := viewKey(views[m.view])
	if !ok {
		m.notice = "Switch to a layer view (tab) to move cubies."
		return nil
	}
	p := m.session.Projection(k)
	id := cellAt(p, m.cursor)

	if _, dragging := m.session.Dragging(); !dragging {
		if id == "" {
			return nil
		}
		if err := m.session.BeginDrag(id, k); err != nil {
			m.err = err
		}
		return nil
	}
	return m.do(func(ctx context.Context) error {
		_, err := m.session.Drop(ctx, k, id)
		return err
	})
}

func (m *playModel) moveCursor(key string) {
	k, ok := viewKey(views[m.view])
	if !ok {
		return
	}
	n := cellCount(m.session.Projection(k))
	step := map[string]int{"left": -1, "right": 1, "up": -3, "down": 3}[key]
	if k == layer.Holding && (key == "up" || key == "down") {
		return
	}
	if next := m.cursor + step; next >= 0 && next < n {
		m.cursor = next
	}
}

func (m *playModel) clampCursor() {
	k, ok := viewKey(views[m.view])
	if !ok {
		m.cursor = 0
		return
	}
	if n := cellCount(m.session.Projection(k)); m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	s := m.session

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubelayers"))
	b.WriteString("\n\n")

	// Status
	solved := "scrambled"
	if s.IsSolved() {
		solved = "solved"
	}
	status := fmt.Sprintf("Moves: %d  Demo: %d  %s  Active: %s",
		s.MoveCount(), s.DemoMoveCount(), solved, s.ActiveLayers())
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")

	// Tabs
	for i, v := range views {
		style := tabStyle
		if i == m.view {
			style = activeTabStyle
		}
		label := string(v)
		if k, ok := viewKey(v); ok && s.ActiveLayers().Contains(k) {
			label += "*"
		}
		b.WriteString(style.Render(label))
	}
	b.WriteString("\n\n")

	// Content
	if k, ok := viewKey(views[m.view]); ok {
		var picked cube.ID
		if d, dragging := s.Dragging(); dragging {
			picked = d.ID
			b.WriteString(moveStyle.Render(fmt.Sprintf("Carrying %s from %s", d.ID, d.Source)))
			b.WriteString("\n")
		}
		b.WriteString(renderLayer(s.Projection(k), m.cursor, picked))
	} else {
		b.WriteString(renderNet(s.Net()))
	}
	b.WriteString("\n")

	if m.frame != nil && s.Busy() {
		b.WriteString(statusStyle.Render(describeFrame(*m.frame)))
		b.WriteString("\n")
	}
	if len(m.last) > 0 {
		b.WriteString("Turns: ")
		b.WriteString(moveStyle.Render(turn.FormatSequence(m.last)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.showHelp {
		for _, w := range cubelayers.Welcome {
			b.WriteString(titleStyle.Render(w.Title))
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(w.Body))
			b.WriteString("\n\n")
		}
	}
	b.WriteString(helpStyle.Render("Keys: UDLRFBMES=turn  tab=view  space=pick/drop  1-4=layers  ^R=reset  ^P=replay  ^T=demo  ?=help  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	opts, err := sessionOptions(cfg, log, j)
	if err != nil {
		return err
	}
	var out sender
	opts = append(opts, cubelayers.WithAnimator(anim.Ticker{
		Interval: cfg.FrameInterval,
		OnFrame:  func(f anim.Frame) { out.Send(frameMsg(f)) },
	}))

	s, err := cubelayers.New(opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	s.OnChange(func(e cubelayers.Event) { out.Send(changeMsg(e)) })
	s.OnMessage(func(msg string) { out.Send(noticeMsg(msg)) })

	p := tea.NewProgram(newPlayModel(cmd.Context(), s), tea.WithAltScreen())
	out.p.Store(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
