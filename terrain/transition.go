package terrain

// DefaultTransitionTicks is the fade length at 60 TPS.
const DefaultTransitionTicks = 12

// Transition is a linear fade between hidden and shown, counted in ticks.
type Transition struct {
	Ticks int

	frame int
	open  bool
}

// SetOpen picks the direction of the fade. The frame is kept, so reversing
// mid-way fades back from where it is.
func (t *Transition) SetOpen(open bool) {
	t.open = open
}

func (t *Transition) Update() {
	switch {
	case t.open && t.frame < t.length():
		t.frame++
	case !t.open && t.frame > 0:
		t.frame--
	}
}

func (t *Transition) length() int {
	if t.Ticks <= 0 {
		return 1
	}
	return t.Ticks
}

// Alpha is the fade opacity in [0, 1].
func (t *Transition) Alpha() float64 {
	return float64(t.frame) / float64(t.length())
}

func (t *Transition) Visible() bool { return t.open || t.frame > 0 }

// Done reports whether the fade has reached its end.
func (t *Transition) Done() bool {
	if t.open {
		return t.frame >= t.length()
	}
	return t.frame == 0
}
