package color

// Gradient maps a normalized scalar in [0, 1] to a color by linear
// interpolation between an ordered sequence of stops.
type Gradient struct {
	colors []Color
	stops  []float32
}

// NewGradient creates a gradient with evenly spaced stops.
// A gradient needs at least one color; a single color yields a constant
// gradient.
func NewGradient(colors ...Color) Gradient {
	return Gradient{colors: colors}
}

// NewGradientStops creates a gradient with explicit stop positions.
// stops must be ascending, the same length as colors, and span [0, 1].
func NewGradientStops(colors []Color, stops []float32) Gradient {
	return Gradient{colors: colors, stops: stops}
}

// StopCount returns the number of color stops.
func (g Gradient) StopCount() int {
	return len(g.colors)
}

// Sample returns the interpolated color at t, clamping t to [0, 1].
func (g Gradient) Sample(t float32) Color {
	if len(g.colors) == 0 {
		return Color{}
	}
	if len(g.colors) == 1 {
		return g.colors[0]
	}
	if t <= 0 {
		return g.colors[0]
	}
	if t >= 1 {
		return g.colors[len(g.colors)-1]
	}

	if g.stops == nil {
		pos := t * float32(len(g.colors)-1)
		i := int(pos)
		if i >= len(g.colors)-1 {
			return g.colors[len(g.colors)-1]
		}
		return g.colors[i].Mix(g.colors[i+1], pos-float32(i))
	}

	// Explicit stops: clamp below the first stop, then find the
	// bracketing pair.
	if t <= g.stops[0] {
		return g.colors[0]
	}
	for i := 1; i < len(g.stops); i++ {
		if t <= g.stops[i] {
			span := g.stops[i] - g.stops[i-1]
			if span <= 0 {
				return g.colors[i]
			}
			return g.colors[i-1].Mix(g.colors[i], (t-g.stops[i-1])/span)
		}
	}
	return g.colors[len(g.colors)-1]
}

// Built-in gradients.
var (
	// Rainbow runs blue to red through cyan, green and yellow.
	Rainbow = NewGradient(Blue, Cyan, Green, Yellow, Red)

	// Heat runs dark red through orange to white.
	Heat = NewGradient(DarkRed, Red, Orange, Yellow, White)

	// BlueRed is a two-stop diverging gradient.
	BlueRed = NewGradient(Blue, Red)
)

// namedGradients maps gradient names accepted in viewer options.
var namedGradients = map[string]Gradient{
	"rainbow": Rainbow,
	"heat":    Heat,
	"bluered": BlueRed,
}

// GradientByName looks up a built-in gradient by name.
func GradientByName(name string) (Gradient, bool) {
	g, ok := namedGradients[name]
	return g, ok
}
