package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/input/fuzzy"
)

// CommandFunc runs a prompt command on the line the prompt was opened in.
type CommandFunc func(ctx context.Context, c *Controller, line *block.Block) error

// Command is an entry of the command prompt.
type Command struct {
	Name  string
	Title string
	Run   CommandFunc
}

// Commands is an ordered registry of prompt commands.
type Commands struct {
	list []Command
}

// NewCommands creates an empty registry.
func NewCommands() *Commands {
	return &Commands{}
}

// Register adds cmd. Names are unique and case-insensitive.
func (r *Commands) Register(cmd Command) error {
	if cmd.Name == "" || cmd.Run == nil {
		return fmt.Errorf("register %q: %w", cmd.Name, ErrInvalidCommand)
	}
	if _, ok := r.Lookup(cmd.Name); ok {
		return fmt.Errorf("register %q: %w", cmd.Name, ErrDuplicateCommand)
	}
	r.list = append(r.list, cmd)
	return nil
}

// Lookup returns the command with the given name.
func (r *Commands) Lookup(name string) (Command, bool) {
	for _, cmd := range r.list {
		if strings.EqualFold(cmd.Name, name) {
			return cmd, true
		}
	}
	return Command{}, false
}

// Match resolves a prompt query: an exact name first, then the first
// command whose name starts with the query, then the best fuzzy match. An
// empty query selects the first command.
func (r *Commands) Match(query string) (Command, bool) {
	query = strings.TrimSpace(query)
	if cmd, ok := r.Lookup(query); ok {
		return cmd, true
	}
	q := strings.ToLower(query)
	for _, cmd := range r.list {
		if strings.HasPrefix(strings.ToLower(cmd.Name), q) {
			return cmd, true
		}
	}
	names := make([]string, len(r.list))
	for i, cmd := range r.list {
		names[i] = cmd.Name
	}
	if best, ok := fuzzy.Best(query, names); ok {
		return r.list[best.Index], true
	}
	return Command{}, false
}

// All returns the commands in registration order.
func (r *Commands) All() []Command {
	out := make([]Command, len(r.list))
	copy(out, r.list)
	return out
}

// Run runs the named command on line.
func (c *Controller) Run(ctx context.Context, name string, line *block.Block) (err error) {
	cmd, ok := c.commands.Lookup(name)
	if !ok {
		return fmt.Errorf("run %q: %w", name, ErrUnknownCommand)
	}
	defer func() {
		if r := recover(); r != nil {
			err = &KeyError{Key: name, Err: recovered(r)}
		}
	}()
	c.host.Flush()
	return cmd.Run(ctx, c, line)
}

// CommandInlineOption inserts a two-slot option widget.
const CommandInlineOption = "inline-option"

func registerBuiltins(r *Commands) {
	_ = r.Register(Command{
		Name:  CommandInlineOption,
		Title: "Inline option",
		Run:   insertInlineOption,
	})
}

// insertInlineOption appends an option widget with two empty slots to the
// line's inline list and moves the caret into the first slot.
func insertInlineOption(ctx context.Context, c *Controller, line *block.Block) error {
	inline := line.Inline()
	w, err := inline.CreateBlock(block.KindInlineOption)
	if err != nil {
		return fmt.Errorf("insert inline option: %w", err)
	}
	slots := w.Inline()
	first := slots.AddToEnd(slots.MustCreate(block.KindOption))
	slots.AddToEnd(slots.MustCreate(block.KindOption))
	inline.AddToEnd(w)

	c.intent.Reset()
	c.place(ctx, first, 0, reasonPrompt)
	c.edited(ctx, opCommand, w)
	return nil
}
