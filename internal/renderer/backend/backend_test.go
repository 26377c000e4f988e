package backend

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/outliner/internal/app"
	"github.com/dshills/outliner/internal/config"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "S-Tab"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), "Backspace"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "Up"},
		{"ctrl", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), "C-q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertKey(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, ok := ConvertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.False(t, ok)
}

type fixture struct {
	screen tcell.SimulationScreen
	app    *app.Application
	ui     *UI
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	a, err := app.New(app.Options{Config: config.Default(), Logger: app.NullLogger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	require.NoError(t, term.Init(opts.Mouse))
	t.Cleanup(term.Shutdown)
	screen.SetSize(30, 4)

	return &fixture{screen: screen, app: a, ui: NewUI(term, a, opts)}
}

func (f *fixture) keys(t *testing.T, specs ...string) {
	t.Helper()
	for _, s := range specs {
		quit := f.ui.Handle(context.Background(), Event{Type: EventKey, Key: key.MustParse(s)})
		require.False(t, quit, s)
	}
}

func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		f.ui.Handle(context.Background(), Event{Type: EventKey, Key: key.NewRuneEvent(r, key.ModNone)})
	}
}

func (f *fixture) row(y int) string {
	w, _ := f.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawsIndentedOutline(t *testing.T) {
	f := newFixture(t, Options{IndentWidth: 3})
	f.typeText(t, "ab")
	f.keys(t, "Enter", "Tab")
	f.typeText(t, "c")

	assert.Equal(t, "ab", f.row(0))
	assert.Equal(t, "   c", f.row(1))
	assert.Equal(t, " 2 lines", f.row(3))

	x, y, visible := f.screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 1, y)
}

func TestBlockGutter(t *testing.T) {
	f := newFixture(t, Options{IndentWidth: 3, ShowBlocks: true})
	f.typeText(t, "x")

	lines := f.app.Renderer().Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, lines[0].ID.Short()+" x", f.row(0))
}

func TestStatusShowsPrompt(t *testing.T) {
	f := newFixture(t, Options{})
	f.typeText(t, "a/in")
	assert.Equal(t, " /in  Inline option", f.row(3))

	f.typeText(t, "zz")
	assert.Equal(t, " /inzz", f.row(3))

	f.keys(t, "Escape")
	assert.Equal(t, " 1 lines", f.row(3))
}

func TestScrollFollowsCaret(t *testing.T) {
	f := newFixture(t, Options{})
	for _, s := range []string{"one", "two", "three", "four"} {
		f.typeText(t, s)
		f.keys(t, "Enter")
	}
	f.typeText(t, "five")

	// Three content rows; the caret line is the last visible one.
	assert.Equal(t, "three", f.row(0))
	assert.Equal(t, "five", f.row(2))

	f.keys(t, "Up", "Up", "Up", "Up")
	assert.Equal(t, "one", f.row(0))
}

func TestClickFocusesLine(t *testing.T) {
	f := newFixture(t, Options{IndentWidth: 3, Mouse: true})
	f.typeText(t, "hello")
	f.keys(t, "Enter")
	f.typeText(t, "x")

	f.ui.Handle(context.Background(), Event{Type: EventMouse, MouseX: 2, MouseY: 0})
	idx, off := f.app.Renderer().CaretLine()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, off)

	// Clicks past the text clamp to its end.
	f.ui.Handle(context.Background(), Event{Type: EventMouse, MouseX: 25, MouseY: 0})
	_, off = f.app.Renderer().CaretLine()
	assert.Equal(t, 5, off)

	// Rows without a line are ignored.
	f.ui.Handle(context.Background(), Event{Type: EventMouse, MouseX: 0, MouseY: 2})
	idx, _ = f.app.Renderer().CaretLine()
	assert.Equal(t, 0, idx)
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	assert.True(t, f.ui.Handle(ctx, Event{Type: EventKey, Key: key.MustParse("C-q")}))
	assert.True(t, f.ui.Handle(ctx, Event{Type: EventKey, Key: key.MustParse("C-c")}))
	assert.True(t, f.ui.Handle(ctx, Event{Type: EventClosed}))
}

func TestFramesArePublished(t *testing.T) {
	f := newFixture(t, Options{})
	bus := f.app.Bus()
	f.ui.opts.Bus = bus

	var frames []events.FrameRendered
	_, err := event.Subscribe[events.FrameRendered](bus, events.TopicRendererFrameRendered,
		func(_ context.Context, ev event.Event[events.FrameRendered]) error {
			frames = append(frames, ev.Payload)
			return nil
		})
	require.NoError(t, err)

	f.typeText(t, "a")
	require.Len(t, frames, 1)
	assert.Equal(t, 1, frames[0].Lines)
	assert.Equal(t, 30, frames[0].Width)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, err := app.New(app.Options{Config: config.Default(), Logger: app.NullLogger})
	require.NoError(t, err)
	defer a.Close()

	screen := tcell.NewSimulationScreen("UTF-8")
	ui := NewUI(NewTerminalWithScreen(screen), a, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ui.Run(ctx), context.Canceled)
}
