package behaviour

// Frame carries the timing of the current update/draw pass.
type Frame struct {
	Delta float64 // Seconds since the previous frame
	Total float64 // Seconds since the loop started
}

// Component is the base interface for everything that lives in the game loop
type Component interface {
	// Lifecycle methods
	Start()             // Called before the first Update
	Update(frame Frame) // Called every frame
	OnDestroy()         // Called when the component is removed

	GetEnabled() bool
	SetEnabled(bool)
}

// Drawable components are also drawn each frame, after every Update
type Drawable interface {
	Draw(frame Frame)
	DrawOrder() int
	Visible() bool
}

// BaseComponent provides default implementations for all Component methods.
// Components embed it and override what they need.
type BaseComponent struct {
	enabled   bool
	hidden    bool
	drawOrder int
}

func (c *BaseComponent) Start()       {}
func (c *BaseComponent) Update(Frame) {}
func (c *BaseComponent) OnDestroy()   {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) DrawOrder() int {
	return c.drawOrder
}

func (c *BaseComponent) SetDrawOrder(order int) {
	c.drawOrder = order
}

func (c *BaseComponent) Visible() bool {
	return !c.hidden
}

func (c *BaseComponent) SetVisible(visible bool) {
	c.hidden = !visible
}
