package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/deepdelve/internal/game/message"
)

func TestBuffer(t *testing.T) {
	var b message.Buffer
	message.Msgf(&b, "%s hits you.", message.Capitalize("the orc"))
	b.Msg("You feel better.")
	assert.Equal(t, []string{"The orc hits you.", "You feel better."}, b.Lines())
	assert.True(t, b.Contains("hits you"))
	b.Reset()
	assert.Empty(t, b.Lines())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", message.Capitalize(""))
	assert.Equal(t, "Éowyn", message.Capitalize("éowyn"))
}

func TestFunc(t *testing.T) {
	var got string
	message.Func(func(s string) { got = s }).Msg("x")
	assert.Equal(t, "x", got)
}
