package input

// Keyboard samples a KeyState and debounces individual keys.
type Keyboard struct {
	state   KeyState
	toggles map[Key]*Toggle
}

func NewKeyboard(state KeyState) *Keyboard {
	return &Keyboard{state: state, toggles: make(map[Key]*Toggle)}
}

// SetState swaps the underlying key source.
func (kb *Keyboard) SetState(state KeyState) {
	kb.state = state
}

// Down reports whether k is held, without debouncing.
func (kb *Keyboard) Down(k Key) bool {
	if kb.state == nil {
		return false
	}
	return kb.state.IsKeyDown(k)
}

// JustPressed reports true once per physical press of k. It must be called
// every frame for k so that releases are observed.
func (kb *Keyboard) JustPressed(k Key) bool {
	t, ok := kb.toggles[k]
	if !ok {
		t = &Toggle{}
		kb.toggles[k] = t
	}
	return t.Pressed(kb.Down(k))
}

// LastFunctionKey returns the highest-numbered function key held this frame
// (1..9), or 0 when none is held.
func (kb *Keyboard) LastFunctionKey() int {
	n := 0
	for i, k := range FunctionKeys {
		if kb.Down(k) {
			n = i + 1
		}
	}
	return n
}
