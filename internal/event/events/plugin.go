package events

import "github.com/dshills/outliner/internal/event/topic"

// Plugin topics.
const (
	// TopicPluginLoaded is published after a script ran to completion.
	TopicPluginLoaded topic.Topic = "plugin.loaded"

	// TopicPluginCommandRegistered is published when a script registers a
	// prompt command.
	TopicPluginCommandRegistered topic.Topic = "plugin.command.registered"

	// TopicPluginError is published when a script fails.
	TopicPluginError topic.Topic = "plugin.error"
)

// PluginLoaded names a finished script.
type PluginLoaded struct {
	Script string
}

// PluginCommandRegistered names a script-provided command.
type PluginCommandRegistered struct {
	Script  string
	Command string
}

// PluginError carries a script failure.
type PluginError struct {
	Script  string
	Message string
}
