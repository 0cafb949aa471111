package behaviour

import "sort"

type entry struct {
	component Component
	started   bool
}

// ComponentManager owns the ordered component list of the game loop.
// Components update in list order and draw in DrawOrder.
type ComponentManager struct {
	entries   []entry
	toDestroy []Component
}

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		entries:   make([]entry, 0),
		toDestroy: make([]Component, 0),
	}
}

// Add appends a component and enables it.
func (cm *ComponentManager) Add(c Component) {
	cm.Insert(len(cm.entries), c)
}

// Insert places a component at index, clamped to the list bounds.
func (cm *ComponentManager) Insert(index int, c Component) {
	if index < 0 {
		index = 0
	}
	if index > len(cm.entries) {
		index = len(cm.entries)
	}
	c.SetEnabled(true)
	cm.entries = append(cm.entries, entry{})
	copy(cm.entries[index+1:], cm.entries[index:])
	cm.entries[index] = entry{component: c}
}

// At returns the component at index, or nil when out of range.
func (cm *ComponentManager) At(index int) Component {
	if index < 0 || index >= len(cm.entries) {
		return nil
	}
	return cm.entries[index].component
}

func (cm *ComponentManager) Len() int {
	return len(cm.entries)
}

// Remove drops a component immediately and calls OnDestroy.
func (cm *ComponentManager) Remove(c Component) {
	for i, e := range cm.entries {
		if e.component == c {
			cm.entries = append(cm.entries[:i], cm.entries[i+1:]...)
			c.OnDestroy()
			return
		}
	}
}

// Destroy marks a component for removal at the start of the next UpdateAll.
func (cm *ComponentManager) Destroy(c Component) {
	cm.toDestroy = append(cm.toDestroy, c)
}

// UpdateAll starts new components and updates every enabled one in order.
func (cm *ComponentManager) UpdateAll(frame Frame) {
	if len(cm.toDestroy) > 0 {
		for _, c := range cm.toDestroy {
			cm.Remove(c)
		}
		cm.toDestroy = cm.toDestroy[:0]
	}

	for i := range cm.entries {
		e := &cm.entries[i]
		if !e.component.GetEnabled() {
			continue
		}
		if !e.started {
			e.component.Start()
			e.started = true
		}
		e.component.Update(frame)
	}
}

// DrawAll draws visible drawables sorted by DrawOrder, ties in list order.
func (cm *ComponentManager) DrawAll(frame Frame) {
	drawables := make([]Drawable, 0, len(cm.entries))
	for _, e := range cm.entries {
		if d, ok := e.component.(Drawable); ok && d.Visible() {
			drawables = append(drawables, d)
		}
	}
	sort.SliceStable(drawables, func(i, j int) bool {
		return drawables[i].DrawOrder() < drawables[j].DrawOrder()
	})
	for _, d := range drawables {
		d.Draw(frame)
	}
}

// Clear removes all components
func (cm *ComponentManager) Clear() {
	for _, e := range cm.entries {
		e.component.OnDestroy()
	}
	cm.entries = cm.entries[:0]
	cm.toDestroy = cm.toDestroy[:0]
}
