package ui

import (
	"image"
	"math"
	"strconv"

	"window-frost/internal/core"
)

// Controls holds the HUD's adjustable parameters, their last known values and
// their button layout. It has no rendering dependencies so the HUD logic works
// headless.
type Controls struct {
	width       int
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

// NewControls discovers the adjustable parameters of target and lays their
// buttons out in a panel of the given width.
func NewControls(target any, width int) *Controls {
	c := &Controls{width: max(width, 0)}
	if provider, ok := target.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			c.states = append(c.states, controlState{control: ctrl, value: "--"})
		}
	}
	c.intSetter, _ = target.(core.IntParameterSetter)
	c.floatSetter, _ = target.(core.FloatParameterSetter)
	c.layout()
	return c
}

// Len reports the number of controls.
func (c *Controls) Len() int { return len(c.states) }

// Bottom returns the y coordinate just below the last control row.
func (c *Controls) Bottom() int { return controlsTop + len(c.states)*lineHeight }

// Value returns the formatted value of control i.
func (c *Controls) Value(i int) string { return c.states[i].value }

func (c *Controls) layout() {
	for i := range c.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(c.width-panelPadding-buttonSize, buttonY, c.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		c.states[i].top = top
		c.states[i].minusRect = minus
		c.states[i].plusRect = plus
	}
}

// Refresh pulls current values out of snap.
func (c *Controls) Refresh(snap core.ParameterSnapshot) {
	for i := range c.states {
		s := &c.states[i]
		s.hasValue = false
		s.value = "--"
		p, ok := snap.Find(s.control.Key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			continue
		}
		s.floatValue = v
		s.intValue = int(math.Round(v))
		s.value = formatValue(s.control, v)
		s.hasValue = true
	}
}

// Click applies the button under panel-local point (x, y), if any. It reports
// whether a parameter changed.
func (c *Controls) Click(x, y int) bool {
	p := image.Pt(x, y)
	for i := range c.states {
		s := &c.states[i]
		switch {
		case p.In(s.minusRect):
			return c.Adjust(i, -1)
		case p.In(s.plusRect):
			return c.Adjust(i, 1)
		}
	}
	return false
}

// next returns the value control i would move to in direction dir.
func (c *Controls) next(i, dir int) (float64, bool) {
	s := &c.states[i]
	if !s.hasValue || dir == 0 {
		return 0, false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return 0, false
		}
		step := max(int(math.Round(s.control.Step)), 1)
		target := math.Round(s.control.Clamp(float64(s.intValue + dir*step)))
		return target, int(target) != s.intValue
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return 0, false
		}
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := s.control.Clamp(s.floatValue + float64(dir)*step)
		return target, math.Abs(target-s.floatValue) >= 1e-9
	default:
		return 0, false
	}
}

// CanAdjust reports whether control i can move in direction dir.
func (c *Controls) CanAdjust(i, dir int) bool {
	_, ok := c.next(i, dir)
	return ok
}

// Adjust steps control i in direction dir through the setter.
func (c *Controls) Adjust(i, dir int) bool {
	target, ok := c.next(i, dir)
	if !ok {
		return false
	}
	s := &c.states[i]
	switch s.control.Type {
	case core.ParamTypeInt:
		if !c.intSetter.SetIntParameter(s.control.Key, int(target)) {
			return false
		}
		s.intValue = int(target)
	case core.ParamTypeFloat:
		if !c.floatSetter.SetFloatParameter(s.control.Key, target) {
			return false
		}
	}
	s.floatValue = target
	s.value = formatValue(s.control, target)
	return true
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
