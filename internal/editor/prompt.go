package editor

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/input/key"
)

// ClassPrompt is the class of the transient prompt anchor element.
const ClassPrompt = "prompt"

// Prompt is an open command prompt. Its anchor is a transient element
// holding the trigger character and the query typed after it.
type Prompt struct {
	Block  block.ID
	Offset int

	anchor  *html.Node
	trigger rune
}

// Query returns the text typed after the trigger.
func (p *Prompt) Query() string {
	var sb strings.Builder
	for n := p.anchor.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	}
	return strings.TrimPrefix(sb.String(), string(p.trigger))
}

// Anchor returns the anchor element.
func (p *Prompt) Anchor() *html.Node { return p.anchor }

// PromptState returns the open prompt, or nil.
func (c *Controller) PromptState() *Prompt {
	return c.prompt
}

// openPrompt inserts the anchor at the caret and moves the caret after the
// trigger inside it.
func (c *Controller) openPrompt(ctx context.Context, b *block.Block) {
	off := c.Offset(b)
	anchor := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: ClassPrompt}},
	}
	text := &html.Node{Type: html.TextNode, Data: string(c.opts.PromptTrigger)}
	anchor.AppendChild(text)
	c.host.InsertNode(anchor)
	c.host.Select(caret.Position{Node: text, Offset: 1})

	c.prompt = &Prompt{Block: b.ID(), Offset: off, anchor: anchor, trigger: c.opts.PromptTrigger}
	c.log.Debug("prompt opened", "block", b.String(), "offset", off)
	publish(ctx, c, events.TopicPromptOpened, events.PromptOpened{Block: b.ID(), Offset: off})
}

// promptKey handles a key while the prompt is open. Keys it does not
// handle cancel the prompt and run their usual operation.
func (c *Controller) promptKey(ctx context.Context, ev key.Event) (bool, error) {
	switch {
	case ev.Key == key.KeyEnter:
		return true, c.confirmPrompt(ctx)
	case ev.Key == key.KeyEscape:
		c.closePrompt(ctx, "", false)
		return true, nil
	case ev.Key == key.KeyBackspace:
		if c.prompt.Query() == "" {
			c.closePrompt(ctx, "", false)
		} else {
			c.host.DeleteBackward()
		}
		return true, nil
	case ev.IsChar():
		c.host.InsertText(string(ev.Rune))
		return true, nil
	}
	c.closePrompt(ctx, "", false)
	return false, nil
}

// ClosePrompt cancels the open prompt, if any.
func (c *Controller) ClosePrompt(ctx context.Context) {
	if c.prompt != nil {
		c.closePrompt(ctx, "", false)
	}
}

// closePrompt removes the anchor and restores the caret where the prompt
// was opened.
func (c *Controller) closePrompt(ctx context.Context, command string, confirmed bool) *block.Block {
	p := c.prompt
	c.prompt = nil
	c.host.RemoveNode(p.anchor)
	publish(ctx, c, events.TopicPromptClosed, events.PromptClosed{Block: p.Block, Command: command, Confirmed: confirmed})

	b := c.tree.Lookup(p.Block)
	if b == nil {
		return nil
	}
	c.place(ctx, b, p.Offset, reasonPrompt)
	return b
}

// confirmPrompt closes the prompt and runs the command its query names.
// A query that matches nothing cancels the prompt.
func (c *Controller) confirmPrompt(ctx context.Context) error {
	query := c.prompt.Query()
	cmd, ok := c.commands.Match(query)
	if !ok {
		c.closePrompt(ctx, "", false)
		c.log.Debug("no command matches prompt", "query", query)
		return nil
	}
	b := c.closePrompt(ctx, cmd.Name, true)
	if b == nil {
		return nil
	}
	c.log.Debug("running command", "command", cmd.Name, "block", b.String())
	return cmd.Run(ctx, c, b)
}
