package renderer

// Unwind collects cleanups for resources created one after another, so a
// failure part way through can release what was already made.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

// Unwind runs the cleanups newest first and empties the list.
func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}
