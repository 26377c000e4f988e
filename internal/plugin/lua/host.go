package lua

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/outliner/internal/editor"
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/event/topic"
	"github.com/dshills/outliner/internal/renderer"
)

// ModuleName is the global table scripts use.
const ModuleName = "outliner"

// Session is the editing session a script drives.
type Session interface {
	Keys(ctx context.Context, specs ...string) error
	Type(ctx context.Context, s string) error
	Dump() ([]byte, error)
	Renderer() *renderer.Renderer
	Editor() *editor.Controller
	Bus() *event.Bus
}

// Logger receives script output and failures.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Host runs scripts against a session.
type Host struct {
	state   *State
	session Session
	log     Logger

	// script names the running script for events and commands.
	script string

	stateOpts []StateOption
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for print, outliner.log and failures.
func WithLogger(l Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithStateOptions configures the host's Lua state.
func WithStateOptions(opts ...StateOption) Option {
	return func(h *Host) { h.stateOpts = append(h.stateOpts, opts...) }
}

// NewHost creates a host with its own sandboxed state.
func NewHost(session Session, opts ...Option) *Host {
	h := &Host{session: session, log: nopLogger{}}
	for _, opt := range opts {
		opt(h)
	}
	h.state = NewState(h.stateOpts...)
	h.install()
	return h
}

// State returns the Lua state.
func (h *Host) State() *State { return h.state }

// RunFile runs the script at path.
func (h *Host) RunFile(ctx context.Context, path string) error {
	return h.run(ctx, filepath.Base(path), func() error { return h.state.DoFile(ctx, path) })
}

// RunString runs code under the given script name.
func (h *Host) RunString(ctx context.Context, name, code string) error {
	return h.run(ctx, name, func() error { return h.state.DoString(ctx, code) })
}

func (h *Host) run(ctx context.Context, name string, fn func() error) error {
	prev := h.script
	h.script = name
	defer func() { h.script = prev }()

	if err := fn(); err != nil {
		h.log.Error("script failed", "script", name, "error", err)
		publish(ctx, h, events.TopicPluginError, events.PluginError{Script: name, Message: err.Error()})
		return &ScriptError{Script: name, Err: err}
	}
	publish(ctx, h, events.TopicPluginLoaded, events.PluginLoaded{Script: name})
	return nil
}

// Close releases the state. Commands registered by scripts fail after
// Close.
func (h *Host) Close() { h.state.Close() }

func (h *Host) install() {
	h.state.SetModule(ModuleName, map[string]lua.LGFunction{
		"key":     h.luaKey,
		"type":    h.luaType,
		"lines":   h.luaLines,
		"caret":   h.luaCaret,
		"dump":    h.luaDump,
		"command": h.luaCommand,
		"run":     h.luaRun,
		"focus":   h.luaFocus,
		"log":     h.luaLog,
	})
	h.state.L.SetGlobal("print", h.state.L.NewFunction(h.luaPrint))
}

func (h *Host) luaKey(L *lua.LState) int {
	specs := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		specs = append(specs, L.CheckString(i))
	}
	if err := h.session.Keys(h.state.Context(), specs...); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Host) luaType(L *lua.LState) int {
	if err := h.session.Type(h.state.Context(), L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Host) luaLines(L *lua.LState) int {
	out := L.NewTable()
	for _, l := range h.session.Renderer().Lines() {
		row := L.NewTable()
		row.RawSetString("id", lua.LString(l.ID.String()))
		row.RawSetString("depth", lua.LNumber(l.Depth))
		row.RawSetString("text", lua.LString(l.Text))
		out.Append(row)
	}
	L.Push(out)
	return 1
}

func (h *Host) luaCaret(L *lua.LState) int {
	idx, off := h.session.Renderer().CaretLine()
	if idx < 0 {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(idx + 1))
	L.Push(lua.LNumber(off))
	return 2
}

func (h *Host) luaDump(L *lua.LState) int {
	out, err := h.session.Dump()
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LString(out))
	return 1
}

// luaCommand registers a prompt command backed by a Lua function that
// receives the line id.
func (h *Host) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	title := L.OptString(2, name)
	fn := L.CheckFunction(3)
	script := h.script

	err := h.session.Editor().Commands().Register(editor.Command{
		Name:  name,
		Title: title,
		Run: func(ctx context.Context, _ *editor.Controller, line *block.Block) error {
			if err := h.state.Call(fn, lua.LString(line.ID().String())); err != nil {
				return &ScriptError{Script: script, Err: fmt.Errorf("command %s: %w", name, err)}
			}
			return nil
		},
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	publish(h.state.Context(), h, events.TopicPluginCommandRegistered,
		events.PluginCommandRegistered{Script: script, Command: name})
	return 0
}

func (h *Host) luaRun(L *lua.LState) int {
	name := L.CheckString(1)
	ed := h.session.Editor()
	line := ed.Current()
	if line == nil {
		L.RaiseError("run %s: no current line", name)
	}
	if err := ed.Run(h.state.Context(), name, line); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// luaFocus places the caret in the block with the given id.
func (h *Host) luaFocus(L *lua.LState) int {
	id, err := block.ParseID(L.CheckString(1))
	if err != nil {
		L.ArgError(1, "invalid block id")
	}
	ed := h.session.Editor()
	b := ed.Tree().Lookup(id)
	if b == nil {
		L.RaiseError("focus: no block %s", id.Short())
	}
	if err := ed.Focus(h.state.Context(), b, L.OptInt(2, 0)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Host) luaLog(L *lua.LState) int {
	h.log.Info(L.CheckString(1), "script", h.script)
	return 0
}

func (h *Host) luaPrint(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	h.log.Info("script output", "script", h.script, "text", strings.Join(parts, "\t"))
	return 0
}

func publish[T any](ctx context.Context, h *Host, t topic.Topic, payload T) {
	bus := h.session.Bus()
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, event.NewEvent(t, payload, "plugin")); err != nil {
		h.log.Error("publish failed", "topic", t.String(), "error", err)
	}
}
