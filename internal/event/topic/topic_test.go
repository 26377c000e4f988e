package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Nil(t, Topic("").Segments())
	assert.Equal(t, []string{"block", "deleted"}, Topic("block.deleted").Segments())
}

func TestParentChildBase(t *testing.T) {
	tp := Topic("prompt.command.run")
	assert.Equal(t, Topic("prompt.command"), tp.Parent())
	assert.Equal(t, Topic(""), Topic("caret").Parent())
	assert.Equal(t, "run", tp.Base())
	assert.Equal(t, "caret", Topic("caret").Base())
	assert.Equal(t, Topic("caret.moved"), Topic("caret").Child("moved"))
	assert.Equal(t, Topic("caret"), Topic("").Child("caret"))
	assert.Equal(t, Topic("a.b.c"), Join("a", "b", "c"))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"caret.moved", true},
		{"caret", true},
		{"", false},
		{".caret", false},
		{"caret.", false},
		{"caret..moved", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.topic.IsValid(), "%q", tt.topic)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"block.deleted", "block.deleted", true},
		{"block.deleted", "block.created", false},
		{"block.deleted", "block.*", true},
		{"block.deleted", "*.deleted", true},
		{"block.deleted", "*", false},
		{"block.deleted", "**", true},
		{"prompt.command.run", "prompt.**", true},
		{"prompt", "prompt.**", true},
		{"prompt.command.run", "prompt.*", false},
		{"prompt.command.run", "**.run", true},
		{"prompt.command.run", "prompt.**.run", true},
		{"caret.moved", "block.**", false},
		{"caret.moved", "caret.moved.extra", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.topic.Matches(tt.pattern), "%q ~ %q", tt.topic, tt.pattern)
	}
}

func TestIsWildcard(t *testing.T) {
	assert.True(t, Topic("block.*").IsWildcard())
	assert.True(t, Topic("**").IsWildcard())
	assert.False(t, Topic("block.deleted").IsWildcard())
}
