package events

import "github.com/dshills/outliner/internal/event/topic"

// Config topics.
const (
	// TopicConfigReloaded is published when a watched config file was
	// reloaded and validated.
	TopicConfigReloaded topic.Topic = "config.reloaded"

	// TopicConfigValidationError is published when a reload is rejected.
	TopicConfigValidationError topic.Topic = "config.validation.error"
)

// ConfigReloaded names the file that changed.
type ConfigReloaded struct {
	Path string
}

// ConfigValidationError carries a rejected reload.
type ConfigValidationError struct {
	Path  string
	Error string
}
