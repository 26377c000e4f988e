// Package topic provides dot-separated event topics and wildcard matching
// for the event bus.
//
// Topics name what happened, most general segment first:
//
//	block.added-to-end
//	caret.moved
//	prompt.opened
//	config.reloaded
//
// Subscription patterns may use two wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	block.*      matches block.deleted, block.inserted-after
//	prompt.**    matches prompt.opened, prompt.command.run
//	*.moved      matches caret.moved
//	**           matches everything
package topic
