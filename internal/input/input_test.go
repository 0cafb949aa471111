package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTogglePressOnlyOnceWhileHeld(t *testing.T) {
	var tg Toggle
	assert.True(t, tg.Pressed(true))
	assert.False(t, tg.Pressed(true))
	assert.False(t, tg.Pressed(true))
	assert.True(t, tg.Held())

	assert.False(t, tg.Pressed(false))
	assert.False(t, tg.Held())
	assert.True(t, tg.Pressed(true), "release re-arms the toggle")
}

func TestCyclerWraps(t *testing.T) {
	c, err := NewCycler(3)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 3, c.Len())
}

func TestCyclerSetWrapsNegative(t *testing.T) {
	c, err := NewCycler(4)
	require.NoError(t, err)
	c.Set(-1)
	assert.Equal(t, 3, c.Index())
	c.Set(9)
	assert.Equal(t, 1, c.Index())
}

func TestCyclerRejectsEmpty(t *testing.T) {
	_, err := NewCycler(0)
	assert.Error(t, err)
}

func TestReflectanceSequence(t *testing.T) {
	s := NewReflectance()
	assert.InDelta(t, 0.4, s.Value, 1e-6)

	want := []float32{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 0.1, 0.2}
	for i, w := range want {
		assert.InDeltaf(t, w, s.Next(), 1e-6, "step %d", i)
	}
}

func TestReflectanceNoDriftOverManyCycles(t *testing.T) {
	s := NewReflectance()
	for i := 0; i < 1000; i++ {
		s.Next()
	}
	assert.GreaterOrEqual(t, s.Value, float32(ReflectanceMin)-1e-6)
	assert.LessOrEqual(t, s.Value, float32(ReflectanceMax)+1e-6)
}

func TestKeyboardJustPressedDebounces(t *testing.T) {
	keys := KeySet{}
	kb := NewKeyboard(keys)

	assert.False(t, kb.JustPressed(KeyM))
	keys[KeyM] = true
	assert.True(t, kb.JustPressed(KeyM))
	assert.False(t, kb.JustPressed(KeyM))
	keys[KeyM] = false
	assert.False(t, kb.JustPressed(KeyM))
	keys[KeyM] = true
	assert.True(t, kb.JustPressed(KeyM))
}

func TestKeyboardKeysDebounceIndependently(t *testing.T) {
	keys := KeySet{KeyM: true, KeyR: true}
	kb := NewKeyboard(keys)
	assert.True(t, kb.JustPressed(KeyM))
	assert.True(t, kb.JustPressed(KeyR))
	assert.False(t, kb.JustPressed(KeyM))
}

func TestLastFunctionKeyHighestWins(t *testing.T) {
	kb := NewKeyboard(KeySet{KeyF2: true, KeyF7: true})
	assert.Equal(t, 7, kb.LastFunctionKey())

	kb.SetState(KeySet{})
	assert.Equal(t, 0, kb.LastFunctionKey())
}

func TestKeyboardNilState(t *testing.T) {
	kb := NewKeyboard(nil)
	assert.False(t, kb.Down(KeyW))
	assert.False(t, kb.JustPressed(KeyW))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "F5", KeyF5.String())
	assert.Equal(t, "Unknown", Key(999).String())
}
