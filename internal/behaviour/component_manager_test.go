package behaviour

import (
	"reflect"
	"testing"
)

func TestComponentManagerAdd(t *testing.T) {
	cm := NewComponentManager()
	comp := &MockComponent{}

	cm.Add(comp)

	if cm.Len() != 1 {
		t.Errorf("Expected 1 registered component, got %d", cm.Len())
	}
	if !comp.GetEnabled() {
		t.Error("Added component should be enabled")
	}
}

func TestComponentManagerInsertKeepsPositions(t *testing.T) {
	cm := NewComponentManager()
	camera := &MockComponent{name: "camera"}
	skybox := &MockComponent{name: "skybox"}
	mesh := &MockComponent{name: "mesh"}

	cm.Insert(0, camera)
	cm.Insert(1, mesh)
	cm.Insert(1, skybox)

	if cm.At(0) != camera || cm.At(1) != skybox || cm.At(2) != mesh {
		t.Error("Insert did not place components at the requested indices")
	}
}

func TestComponentManagerInsertClampsIndex(t *testing.T) {
	cm := NewComponentManager()
	a := &MockComponent{name: "a"}
	b := &MockComponent{name: "b"}

	cm.Insert(10, a)
	cm.Insert(-4, b)

	if cm.At(0) != b || cm.At(1) != a {
		t.Error("Out of range indices should clamp to the list bounds")
	}
}

func TestComponentManagerAtOutOfRange(t *testing.T) {
	cm := NewComponentManager()

	if cm.At(0) != nil || cm.At(-1) != nil {
		t.Error("At should return nil for indices out of range")
	}
}

func TestComponentManagerRemove(t *testing.T) {
	cm := NewComponentManager()
	comp := &MockComponent{}

	cm.Add(comp)
	cm.Remove(comp)

	if cm.Len() != 0 {
		t.Errorf("Expected 0 components after remove, got %d", cm.Len())
	}
	if !comp.destroyed {
		t.Error("OnDestroy() was not called on removed component")
	}
}

func TestComponentManagerUpdateAll(t *testing.T) {
	cm := NewComponentManager()
	comp := &MockComponent{}
	cm.Add(comp)

	frame := Frame{Delta: 0.016, Total: 1.5}
	cm.UpdateAll(frame)
	cm.UpdateAll(frame)

	if comp.startCalls != 1 {
		t.Errorf("Start() should run once, ran %d times", comp.startCalls)
	}
	if comp.updateCalls != 2 {
		t.Errorf("Expected 2 updates, got %d", comp.updateCalls)
	}
	if comp.lastFrame != frame {
		t.Errorf("Expected frame %v, got %v", frame, comp.lastFrame)
	}
}

func TestComponentManagerDisabledComponent(t *testing.T) {
	cm := NewComponentManager()
	comp := &MockComponent{}
	cm.Add(comp)
	comp.SetEnabled(false)

	cm.UpdateAll(Frame{})

	if comp.updateCalls != 0 || comp.startCalls != 0 {
		t.Error("Disabled component should not be started or updated")
	}
}

func TestComponentManagerDestroyIsDeferred(t *testing.T) {
	cm := NewComponentManager()
	comp := &MockComponent{}
	cm.Add(comp)

	cm.Destroy(comp)
	if cm.Len() != 1 {
		t.Error("Destroy should not remove the component immediately")
	}

	cm.UpdateAll(Frame{})
	if cm.Len() != 0 {
		t.Error("Destroyed component should be removed on the next update")
	}
	if comp.updateCalls != 0 {
		t.Error("Destroyed component should not be updated")
	}
}

func TestComponentManagerDrawOrder(t *testing.T) {
	cm := NewComponentManager()
	var log []string
	first := &MockComponent{name: "first", drawLog: &log}
	second := &MockComponent{name: "second", drawLog: &log}
	late := &MockComponent{name: "late", drawLog: &log}
	hidden := &MockComponent{name: "hidden", drawLog: &log}
	late.SetDrawOrder(5)
	hidden.SetVisible(false)

	cm.Add(late)
	cm.Add(first)
	cm.Add(hidden)
	cm.Add(second)

	cm.DrawAll(Frame{})

	want := []string{"first", "second", "late"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("Expected draw order %v, got %v", want, log)
	}
}

func TestComponentManagerClear(t *testing.T) {
	cm := NewComponentManager()
	a := &MockComponent{}
	b := &MockComponent{}
	cm.Add(a)
	cm.Add(b)

	cm.Clear()

	if cm.Len() != 0 {
		t.Errorf("Clear should remove all components, got %d", cm.Len())
	}
	if !a.destroyed || !b.destroyed {
		t.Error("Clear should destroy every component")
	}
}
