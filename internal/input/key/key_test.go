package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"Tab", NewSpecialEvent(KeyTab, ModNone)},
		{"S-Tab", NewSpecialEvent(KeyTab, ModShift)},
		{"Shift+Tab", NewSpecialEvent(KeyTab, ModShift)},
		{"<S-Tab>", NewSpecialEvent(KeyTab, ModShift)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"BS", NewSpecialEvent(KeyBackspace, ModNone)},
		{"Up", NewSpecialEvent(KeyUp, ModNone)},
		{"a", NewRuneEvent('a', ModNone)},
		{"/", NewRuneEvent('/', ModNone)},
		{"-", NewRuneEvent('-', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"<", NewRuneEvent('<', ModNone)},
		{"é", NewRuneEvent('é', ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"C-a", NewRuneEvent('a', ModCtrl)},
		{"Ctrl+Alt+x", NewRuneEvent('x', ModCtrl|ModAlt)},
		{"C--", NewRuneEvent('-', ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("  ")
	assert.ErrorIs(t, err, ErrEmptySpec)

	for _, spec := range []string{"ab", "X-a", "Hyper+Tab"} {
		_, err := Parse(spec)
		assert.ErrorIs(t, err, ErrInvalidSpec, spec)
	}
	assert.Panics(t, func() { MustParse("nope") })
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewSpecialEvent(KeyTab, ModShift), "S-Tab"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewRuneEvent('a', ModCtrl), "C-a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyUp, ModCtrl|ModShift), "C-S-Up"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
		back, err := Parse(tt.want)
		require.NoError(t, err, tt.want)
		assert.Equal(t, tt.ev.Key, back.Key)
	}
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, NewRuneEvent('x', ModNone).IsChar())
	assert.True(t, NewRuneEvent('X', ModShift).IsChar())
	assert.False(t, NewRuneEvent('x', ModCtrl).IsChar())
	assert.False(t, NewRuneEvent('\t', ModNone).IsChar())
	assert.False(t, NewSpecialEvent(KeyEnter, ModNone).IsChar())
	assert.True(t, NewSpecialEvent(KeyTab, ModShift).Shifted())
	assert.True(t, KeyDown.IsVertical())
	assert.False(t, KeyLeft.IsVertical())
	assert.True(t, KeyLeft.IsArrowKey())
	assert.Equal(t, "Key(99)", Key(99).String())
}
