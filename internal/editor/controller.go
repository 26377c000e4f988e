package editor

import (
	"context"

	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/input/key"
)

// Options configures the controller.
type Options struct {
	// IndentWidth is the number of columns one nesting level adds.
	IndentWidth int

	// PromptTrigger opens the command prompt when typed.
	PromptTrigger rune
}

// DefaultOptions returns the default controller options.
func DefaultOptions() Options {
	return Options{
		IndentWidth:   3,
		PromptTrigger: '/',
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithOptions replaces the controller options.
func WithOptions(o Options) Option {
	return func(c *Controller) {
		c.opts = o
	}
}

// WithBus publishes caret, prompt and edit events on bus.
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithLogger sets the controller logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller translates key events into operations on a block tree and
// keeps the caret consistent with the rendered DOM.
//
// Controller is not safe for concurrent use. Every key must be handled by
// the goroutine that owns the tree and the host.
type Controller struct {
	tree     *block.Tree
	host     Host
	bus      *event.Bus
	log      Logger
	opts     Options
	intent   caret.Intent
	prompt   *Prompt
	commands *Commands
}

// New creates a controller for tree rendered by host. The built-in
// commands are registered.
func New(tree *block.Tree, host Host, opts ...Option) *Controller {
	c := &Controller{
		tree:     tree,
		host:     host,
		log:      nopLogger{},
		opts:     DefaultOptions(),
		commands: NewCommands(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.opts.IndentWidth <= 0 {
		c.opts.IndentWidth = DefaultOptions().IndentWidth
	}
	if c.opts.PromptTrigger == 0 {
		c.opts.PromptTrigger = DefaultOptions().PromptTrigger
	}
	registerBuiltins(c.commands)
	return c
}

// Options returns the current options.
func (c *Controller) Options() Options { return c.opts }

// SetOptions replaces the options. Zero fields keep their current value.
func (c *Controller) SetOptions(o Options) {
	if o.IndentWidth > 0 {
		c.opts.IndentWidth = o.IndentWidth
	}
	if o.PromptTrigger != 0 {
		c.opts.PromptTrigger = o.PromptTrigger
	}
}

// Tree returns the edited tree.
func (c *Controller) Tree() *block.Tree { return c.tree }

// Host returns the rendering host.
func (c *Controller) Host() Host { return c.host }

// Commands returns the prompt command registry.
func (c *Controller) Commands() *Commands { return c.commands }

// Intent returns the remembered vertical column.
func (c *Controller) Intent() caret.Intent { return c.intent }

// HandleKey runs the operation bound to ev. An invariant violation aborts
// the key and is returned as a *KeyError.
func (c *Controller) HandleKey(ctx context.Context, ev key.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &KeyError{Key: ev.String(), Err: recovered(r)}
			c.log.Error("key aborted", "key", ev.String(), "error", err)
		}
	}()

	c.host.Flush()
	b := c.focus(ctx)

	if c.prompt != nil {
		handled, err := c.promptKey(ctx, ev)
		if handled {
			return err
		}
	}

	switch {
	case ev.Key == key.KeyEnter:
		c.Split(ctx, b)
	case ev.Key == key.KeyTab && ev.Shifted():
		c.Outdent(ctx, b)
	case ev.Key == key.KeyTab:
		c.Indent(ctx, b)
	case ev.Key == key.KeyBackspace:
		c.Backspace(ctx, b)
	case ev.Key == key.KeyUp:
		c.MoveUp(ctx, b)
	case ev.Key == key.KeyDown:
		c.MoveDown(ctx, b)
	case ev.Key == key.KeyLeft:
		c.moveHorizontal(ctx, b, -1)
	case ev.Key == key.KeyRight:
		c.moveHorizontal(ctx, b, 1)
	case ev.Key == key.KeyHome:
		c.intent.Reset()
		c.place(ctx, b, 0, reasonHorizontal)
	case ev.Key == key.KeyEnd:
		c.intent.Reset()
		c.place(ctx, b, caret.Length(c.target(b)), reasonHorizontal)
	case ev.IsChar() && ev.Rune == c.opts.PromptTrigger:
		c.openPrompt(ctx, b)
	case ev.IsChar():
		c.insertText(ctx, b, string(ev.Rune))
	default:
		c.log.Debug("unbound key", "key", ev.String())
	}
	return nil
}

// Type handles each rune of s as a key press.
func (c *Controller) Type(ctx context.Context, s string) error {
	for _, r := range s {
		if err := c.HandleKey(ctx, key.NewRuneEvent(r, 0)); err != nil {
			return err
		}
	}
	return nil
}

// Keys parses and handles each key spec, such as "S-Tab" or "Enter".
func (c *Controller) Keys(ctx context.Context, specs ...string) error {
	for _, spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			return err
		}
		if err := c.HandleKey(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the line holding the caret, or nil.
func (c *Controller) Current() *block.Block {
	b := c.host.BlockAt(c.host.Selection().Node)
	if b != nil && !b.IsLine() {
		b = b.LineParent()
	}
	return b
}

// Offset returns the caret offset inside b's render target.
func (c *Controller) Offset(b *block.Block) int {
	return caret.Locate(c.target(b), c.host.Selection())
}

// Focus places the caret at offset inside b.
func (c *Controller) Focus(ctx context.Context, b *block.Block, offset int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &KeyError{Key: "focus", Err: recovered(r)}
		}
	}()
	c.host.Flush()
	c.intent.Reset()
	c.place(ctx, b, offset, reasonHorizontal)
	return nil
}

// focus returns the current line. Without a caret it focuses the end of
// the last line, creating one in an empty document.
func (c *Controller) focus(ctx context.Context) *block.Block {
	if b := c.Current(); b != nil {
		return b
	}
	top := c.tree.Root().Children()
	last := top.Tail()
	if last == nil {
		last = top.AddToEnd(c.tree.NewLine())
		c.host.Flush()
	} else {
		last = last.LastDescendant()
	}
	c.place(ctx, last, caret.Length(c.target(last)), reasonEdit)
	return last
}

// target returns b's render target. A missing target is fatal.
func (c *Controller) target(b *block.Block) *html.Node {
	el := c.host.Target(b.ID())
	if el == nil {
		panic(&block.InvariantError{Op: "target", Block: b.ID(), Msg: "no DOM node associated with this block"})
	}
	return el
}

// place flushes the host and collapses the selection to offset inside b.
func (c *Controller) place(ctx context.Context, b *block.Block, offset int, reason string) {
	c.host.Flush()
	el := c.target(b)
	offset = caret.Clamp(el, offset)
	c.host.Select(caret.Place(el, offset))
	c.caretMoved(ctx, b, offset, reason)
}

func (c *Controller) insertText(ctx context.Context, b *block.Block, s string) {
	c.intent.Reset()
	c.host.InsertText(s)
	c.edited(ctx, opText, b)
}
