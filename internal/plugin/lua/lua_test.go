package lua

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/outliner/internal/app"
	"github.com/dshills/outliner/internal/config"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/event/topic"
	"github.com/dshills/outliner/internal/renderer"
)

type entry struct {
	msg string
	kv  []any
}

type recordingLogger struct {
	info, errs []entry
}

func (l *recordingLogger) Info(msg string, kv ...any)  { l.info = append(l.info, entry{msg, kv}) }
func (l *recordingLogger) Error(msg string, kv ...any) { l.errs = append(l.errs, entry{msg, kv}) }

func newHost(t *testing.T, opts ...Option) (*Host, *app.Application) {
	t.Helper()
	a, err := app.New(app.Options{Config: config.Default(), Logger: app.NullLogger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	h := NewHost(a, opts...)
	t.Cleanup(h.Close)
	return h, a
}

func TestSandboxHidesUnsafeGlobals(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `
		assert(io == nil and os == nil and debug == nil)
		assert(require == nil and dofile == nil and loadfile == nil and load == nil)
		assert(string.upper("a") == "A" and math.max(1, 2) == 2)
	`)
	require.NoError(t, err)
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(context.Background(), `while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()
	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
}

func TestScriptBuildsOutline(t *testing.T) {
	h, a := newHost(t)

	err := h.RunString(context.Background(), "build", `
		outliner.type("a")
		outliner.key("Enter", "Tab")
		outliner.type("b")
		local ls = outliner.lines()
		assert(#ls == 2, "two lines")
		assert(ls[1].text == "a" and ls[1].depth == 0)
		assert(ls[2].text == "b" and ls[2].depth == 1)
		local i, off = outliner.caret()
		assert(i == 2 and off == 1, "caret after b")
		local y = outliner.dump()
		assert(string.find(y, "b", 1, true) ~= nil)
	`)
	require.NoError(t, err)

	lines := a.Renderer().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[1].Text)
}

func TestCaretIsNilWithoutSelection(t *testing.T) {
	h, _ := newHost(t)
	require.NoError(t, h.RunString(context.Background(), "caret", `assert(outliner.caret() == nil)`))
}

func TestScriptErrors(t *testing.T) {
	h, a := newHost(t)

	var failures []events.PluginError
	_, err := event.Subscribe[events.PluginError](a.Bus(), events.TopicPluginError,
		func(_ context.Context, ev event.Event[events.PluginError]) error {
			failures = append(failures, ev.Payload)
			return nil
		})
	require.NoError(t, err)

	err = h.RunString(context.Background(), "bad", `outliner.key("Hyper-Q")`)
	var se *ScriptError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bad", se.Script)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad", failures[0].Script)

	err = h.RunString(context.Background(), "syntax", `this is not lua`)
	assert.Error(t, err)
}

func TestScriptCommand(t *testing.T) {
	h, a := newHost(t)

	var seen []topic.Topic
	_, err := a.Bus().SubscribeFunc("plugin.**", func(_ context.Context, ev any) error {
		if tp, ok := ev.(event.TopicProvider); ok {
			seen = append(seen, tp.EventTopic())
		}
		return nil
	})
	require.NoError(t, err)

	err = h.RunString(context.Background(), "shout.lua", `
		last = nil
		outliner.command("shout", "Shout", function(id)
			last = id
			outliner.type("!")
		end)
		outliner.type("hi/shout")
		outliner.key("Enter")
	`)
	require.NoError(t, err)

	lines := a.Renderer().Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "hi!", lines[0].Text)
	assert.Equal(t, lines[0].ID.String(), h.State().L.GetGlobal("last").String())

	_, ok := a.Editor().Commands().Lookup("shout")
	assert.True(t, ok)
	assert.Equal(t, []topic.Topic{events.TopicPluginCommandRegistered, events.TopicPluginLoaded}, seen)

	// Registered commands keep working after the script returns.
	require.NoError(t, a.Type(context.Background(), "/sh"))
	require.NoError(t, a.Keys(context.Background(), "Enter"))
	assert.Equal(t, "hi!!", a.Renderer().Lines()[0].Text)
}

func TestDuplicateCommand(t *testing.T) {
	h, _ := newHost(t)
	err := h.RunString(context.Background(), "dup", `
		outliner.command("inline-option", "again", function() end)
	`)
	assert.Error(t, err)
}

func TestFailingCommand(t *testing.T) {
	h, _ := newHost(t)
	err := h.RunString(context.Background(), "fail", `
		outliner.command("boom", "Boom", function() error("kaboom") end)
		outliner.type("x")
		outliner.run("boom")
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRunBuiltinCommand(t *testing.T) {
	h, a := newHost(t)
	err := h.RunString(context.Background(), "widget", `
		outliner.type("x")
		outliner.run("inline-option")
		outliner.type("yes")
	`)
	require.NoError(t, err)
	assert.Equal(t, "xyes"+renderer.Separator, a.Renderer().Lines()[0].Text)
}

func TestFocusByID(t *testing.T) {
	h, a := newHost(t)
	err := h.RunString(context.Background(), "focus", `
		outliner.type("first")
		outliner.key("Enter")
		outliner.type("second")
		local ls = outliner.lines()
		outliner.focus(ls[1].id, 2)
		local i, off = outliner.caret()
		assert(i == 1 and off == 2, "caret moved to first line")
		outliner.type("X")
	`)
	require.NoError(t, err)
	assert.Equal(t, "fiXrst", a.Renderer().Lines()[0].Text)

	err = h.RunString(context.Background(), "bad-id", `outliner.focus("not-an-id")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid block id")

	err = h.RunString(context.Background(), "gone", `outliner.focus("00000000-0000-0000-0000-000000000001")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no block")
}

func TestRunWithoutLine(t *testing.T) {
	h, _ := newHost(t)
	err := h.RunString(context.Background(), "early", `outliner.run("inline-option")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no current line")
}

func TestPrintAndLogGoToLogger(t *testing.T) {
	log := &recordingLogger{}
	h, _ := newHost(t, WithLogger(log))

	require.NoError(t, h.RunString(context.Background(), "talk", `
		print("a", 1)
		outliner.log("hello")
	`))
	require.Len(t, log.info, 2)
	assert.Equal(t, "script output", log.info[0].msg)
	assert.Equal(t, []any{"script", "talk", "text", "a\t1"}, log.info[0].kv)
	assert.Equal(t, "hello", log.info[1].msg)
}

func TestRunFile(t *testing.T) {
	h, a := newHost(t)
	path := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(`outliner.type("from file")`), 0o600))

	var loaded []string
	_, err := event.Subscribe[events.PluginLoaded](a.Bus(), events.TopicPluginLoaded,
		func(_ context.Context, ev event.Event[events.PluginLoaded]) error {
			loaded = append(loaded, ev.Payload.Script)
			return nil
		})
	require.NoError(t, err)

	require.NoError(t, h.RunFile(context.Background(), path))
	assert.Equal(t, "from file", a.Renderer().Lines()[0].Text)
	assert.Equal(t, []string{"init.lua"}, loaded)
}
