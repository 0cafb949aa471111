package behaviour

import (
	"testing"
)

type MockComponent struct {
	BaseComponent
	startCalls  int
	updateCalls int
	destroyed   bool
	lastFrame   Frame
	drawLog     *[]string
	name        string
}

func (m *MockComponent) Start() {
	m.startCalls++
}

func (m *MockComponent) Update(frame Frame) {
	m.updateCalls++
	m.lastFrame = frame
}

func (m *MockComponent) OnDestroy() {
	m.destroyed = true
}

func (m *MockComponent) Draw(Frame) {
	if m.drawLog != nil {
		*m.drawLog = append(*m.drawLog, m.name)
	}
}

func TestBaseComponentDefaults(t *testing.T) {
	comp := &BaseComponent{}

	if comp.GetEnabled() {
		t.Error("BaseComponent should start disabled until added")
	}
	if !comp.Visible() {
		t.Error("BaseComponent should be visible by default")
	}
	if comp.DrawOrder() != 0 {
		t.Errorf("Expected draw order 0, got %d", comp.DrawOrder())
	}
}

func TestBaseComponentSetters(t *testing.T) {
	comp := &BaseComponent{}

	comp.SetEnabled(true)
	comp.SetVisible(false)
	comp.SetDrawOrder(3)

	if !comp.GetEnabled() {
		t.Error("Component should be enabled")
	}
	if comp.Visible() {
		t.Error("Component should be hidden")
	}
	if comp.DrawOrder() != 3 {
		t.Errorf("Expected draw order 3, got %d", comp.DrawOrder())
	}
}

func TestMockComponentIsDrawable(t *testing.T) {
	var _ Drawable = &MockComponent{}
	var _ Component = &MockComponent{}
}
