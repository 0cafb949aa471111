// Package input turns raw key state into discrete, debounced selections.
package input

// Key identifies a keyboard key independent of the windowing library.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyB
	KeyM
	KeyR
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyLeftShift
	KeyRightShift
	KeyEscape
)

var keyNames = map[Key]string{
	KeyW: "W", KeyA: "A", KeyS: "S", KeyD: "D",
	KeyB: "B", KeyM: "M", KeyR: "R",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9",
	KeyLeftShift: "LeftShift", KeyRightShift: "RightShift",
	KeyEscape: "Escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// FunctionKeys lists F1..F9 in order.
var FunctionKeys = [9]Key{KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9}

// KeyState reports whether a key is held this frame.
type KeyState interface {
	IsKeyDown(k Key) bool
}

// KeySet is a KeyState backed by a set. Useful for tests and replays.
type KeySet map[Key]bool

func (s KeySet) IsKeyDown(k Key) bool { return s[k] }
