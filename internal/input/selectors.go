package input

import (
	"fmt"
	"math"
)

// Toggle is a press-debounce flag: it fires once when a key goes down and
// stays quiet until the key is released.
type Toggle struct {
	held bool
}

// Pressed feeds the current key state and reports a fresh press.
func (t *Toggle) Pressed(down bool) bool {
	if !down {
		t.held = false
		return false
	}
	if t.held {
		return false
	}
	t.held = true
	return true
}

func (t *Toggle) Held() bool { return t.held }

// Cycler holds an index in [0, n) that wraps on Next.
type Cycler struct {
	n, i int
}

func NewCycler(n int) (*Cycler, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cycler size must be positive, got %d", n)
	}
	return &Cycler{n: n}, nil
}

func (c *Cycler) Next() int {
	c.i = (c.i + 1) % c.n
	return c.i
}

func (c *Cycler) Index() int { return c.i }

func (c *Cycler) Len() int { return c.n }

// Set moves the index, wrapping values outside [0, n).
func (c *Cycler) Set(i int) {
	c.i = ((i % c.n) + c.n) % c.n
}

const (
	ReflectanceStart = 0.4
	ReflectanceStep  = 0.1
	ReflectanceMin   = 0.1
	ReflectanceMax   = 1.0

	stepEpsilon = 1e-4
)

// Stepper increments a scalar by a fixed step and wraps to Min once it
// exceeds Max.
type Stepper struct {
	Value, Step, Min, Max float32
}

// NewReflectance returns the stepper for the reflection-mapping strength.
func NewReflectance() *Stepper {
	return &Stepper{
		Value: ReflectanceStart,
		Step:  ReflectanceStep,
		Min:   ReflectanceMin,
		Max:   ReflectanceMax,
	}
}

func (s *Stepper) Next() float32 {
	v := s.Value + s.Step
	if float64(v) > float64(s.Max)+stepEpsilon {
		v = s.Min
	}
	// Keep the value on the step grid so float drift does not accumulate.
	s.Value = float32(math.Round(float64(v)/float64(s.Step)) * float64(s.Step))
	return s.Value
}
