package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/outliner/internal/editor"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/input/key"
	"github.com/dshills/outliner/internal/renderer"
)

// Session is the editing session the UI drives.
type Session interface {
	HandleKey(ctx context.Context, ev key.Event) error
	Renderer() *renderer.Renderer
	Editor() *editor.Controller
}

// Options configures the UI.
type Options struct {
	// IndentWidth is the number of cells per depth level. Zero follows the
	// editor's indent width.
	IndentWidth int

	// ShowBlocks draws each line's short block id in a gutter.
	ShowBlocks bool

	// Mouse enables click-to-focus.
	Mouse bool

	Bus    *event.Bus
	Logger editor.Logger
}

// UI draws the outline to a terminal and feeds it keys.
type UI struct {
	term    *Terminal
	session Session
	opts    Options

	top    int
	status string
}

var (
	styleText   = tcell.StyleDefault
	styleGutter = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// NewUI creates a UI. The terminal is initialized by Run.
func NewUI(term *Terminal, session Session, opts Options) *UI {
	return &UI{term: term, session: session, opts: opts}
}

// Run processes terminal events until Ctrl-Q, Ctrl-C or ctx is done.
// Key errors are shown in the status line and do not stop the loop.
func (u *UI) Run(ctx context.Context) error {
	if err := u.term.Init(u.opts.Mouse); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer u.term.Shutdown()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			u.term.Interrupt()
		case <-done:
		}
	}()

	u.Draw(ctx)
	for {
		ev := u.term.PollEvent()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := u.Handle(ctx, ev); quit {
			return nil
		}
	}
}

// Handle applies one terminal event and redraws. It reports whether the
// UI should exit.
func (u *UI) Handle(ctx context.Context, ev Event) bool {
	switch ev.Type {
	case EventClosed:
		return true
	case EventKey:
		if isQuit(ev.Key) {
			return true
		}
		u.status = ""
		if err := u.session.HandleKey(ctx, ev.Key); err != nil {
			u.status = err.Error()
			u.logError("key failed", "key", ev.Key.String(), "error", err)
		}
	case EventMouse:
		u.click(ctx, ev.MouseX, ev.MouseY)
	case EventResize:
		u.term.Sync()
	case EventNone, EventInterrupt:
		return false
	}
	u.Draw(ctx)
	return false
}

func isQuit(ev key.Event) bool {
	return ev.Modifiers.Has(key.ModCtrl) && (ev.Rune == 'q' || ev.Rune == 'c')
}

// click focuses the line under (x, y).
func (u *UI) click(ctx context.Context, x, y int) {
	lines := u.session.Renderer().Lines()
	idx := u.top + y
	if y < 0 || idx >= len(lines) {
		return
	}
	l := lines[idx]
	b := u.session.Editor().Tree().Lookup(l.ID)
	if b == nil {
		return
	}
	off := max(x-u.column(l), 0)
	if err := u.session.Editor().Focus(ctx, b, off); err != nil {
		u.status = err.Error()
		u.logError("focus failed", "block", l.ID.Short(), "error", err)
	}
}

func (u *UI) gutter() int {
	if !u.opts.ShowBlocks {
		return 0
	}
	return 9
}

// column is the first cell of l's text.
func (u *UI) column(l renderer.Line) int {
	return u.gutter() + l.Depth*u.indent()
}

func (u *UI) indent() int {
	if u.opts.IndentWidth > 0 {
		return u.opts.IndentWidth
	}
	return u.session.Editor().Options().IndentWidth
}

// Draw renders the current outline, caret and status line.
func (u *UI) Draw(ctx context.Context) {
	r := u.session.Renderer()
	r.Flush()
	s := u.term.Screen()
	s.Clear()

	width, height := s.Size()
	rows := max(height-1, 0)
	lines := r.Lines()
	idx, off := r.CaretLine()
	u.scroll(idx, rows)

	for row := 0; row < rows && u.top+row < len(lines); row++ {
		l := lines[u.top+row]
		if u.opts.ShowBlocks {
			drawString(s, 0, row, width, l.ID.Short(), styleGutter)
		}
		drawString(s, u.column(l), row, width, l.Text, styleText)
	}

	if idx >= 0 && idx-u.top < rows {
		s.ShowCursor(u.column(lines[idx])+off, idx-u.top)
	} else {
		s.HideCursor()
	}

	if rows < height {
		u.drawStatus(s, width, height-1, len(lines))
	}
	s.Show()

	if u.opts.Bus != nil {
		frame := events.FrameRendered{Lines: len(lines), Width: width}
		if err := u.opts.Bus.Publish(ctx, event.NewEvent(events.TopicRendererFrameRendered, frame, "backend")); err != nil {
			u.logError("publish failed", "error", err)
		}
	}
}

// scroll keeps the caret line inside the visible rows.
func (u *UI) scroll(idx, rows int) {
	if idx < 0 || rows == 0 {
		return
	}
	if idx < u.top {
		u.top = idx
	}
	if idx >= u.top+rows {
		u.top = idx - rows + 1
	}
}

func (u *UI) drawStatus(s tcell.Screen, width, row, count int) {
	style := styleStatus
	var text string
	switch p := u.session.Editor().PromptState(); {
	case u.status != "":
		style = styleError
		text = u.status
	case p != nil:
		ed := u.session.Editor()
		text = fmt.Sprintf(" %c%s", ed.Options().PromptTrigger, p.Query())
		if cmd, ok := ed.Commands().Match(p.Query()); ok {
			text += "  " + cmd.Title
		}
	default:
		text = fmt.Sprintf(" %d lines", count)
	}
	if pad := width - len([]rune(text)); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	drawString(s, 0, row, width, text, style)
}

// Status returns the current status line message, if any.
func (u *UI) Status() string { return u.status }

func (u *UI) logError(msg string, keysAndValues ...any) {
	if u.opts.Logger != nil {
		u.opts.Logger.Error(msg, keysAndValues...)
	}
}

func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
