package terrain

// State is the open/closed state of a Modal.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

// Modal drives the terrain edit dialog. The parent owns the open flag and
// the source entry; Modal owns the edit state and reports back through the
// two callbacks it was built with.
//
// The host calls Sync once per frame with the parent's current values. Any
// change of the source pointer or of the open flag resets the edit state,
// so edits made for one entry never show up when another entry is opened.
type Modal struct {
	setOpen  func(open bool)
	onSubmit func(t Terrain)

	source *Terrain
	open   bool
	synced bool
	edit   EditState

	transition Transition
}

// NewModal returns a closed modal. setOpen is called on every close;
// onSubmit only when the dialog is closed through Submit.
func NewModal(setOpen func(open bool), onSubmit func(t Terrain)) *Modal {
	return &Modal{
		setOpen:    setOpen,
		onSubmit:   onSubmit,
		transition: Transition{Ticks: DefaultTransitionTicks},
	}
}

// Sync feeds the parent's source entry and open flag. It returns true when
// the edit state was reset.
func (m *Modal) Sync(src *Terrain, isOpen bool) bool {
	if m.synced && src == m.source && isOpen == m.open {
		return false
	}
	m.synced = true
	m.source = src
	m.open = isOpen
	m.edit.Reset(src)
	m.transition.SetOpen(isOpen)
	return true
}

// Close ends the dialog. With submitted set, onSubmit receives the merged
// entry before the open flag is cleared. Closing a closed modal does nothing.
func (m *Modal) Close(submitted bool) {
	if !m.open {
		return
	}
	if submitted && m.onSubmit != nil {
		m.onSubmit(m.Merged())
	}
	m.open = false
	m.transition.SetOpen(false)
	if m.setOpen != nil {
		m.setOpen(false)
	}
}

// Submit is the action bar's submit button.
func (m *Modal) Submit() { m.Close(true) }

// Cancel is the action bar's cancel button.
func (m *Modal) Cancel() { m.Close(false) }

// Dismiss handles a backdrop click or Escape.
func (m *Modal) Dismiss() { m.Close(false) }

func (m *Modal) SetType(raw string) { m.edit.SetType(raw) }
func (m *Modal) SetCost(raw string) { m.edit.SetCost(raw) }
func (m *Modal) SetMask(raw string) { m.edit.SetMask(raw) }

// Edit returns the current edit state.
func (m *Modal) Edit() EditState { return m.edit }

// Merged returns the source entry with the edited attributes applied.
func (m *Modal) Merged() Terrain {
	var base Terrain
	if m.source != nil {
		base = *m.source
	}
	return Merge(base, m.edit)
}

func (m *Modal) State() State {
	if m.open {
		return StateOpen
	}
	return StateClosed
}

func (m *Modal) IsOpen() bool { return m.open }

// Title is the dialog heading.
func (m *Modal) Title() string {
	if m.source == nil || m.source.Type == "" {
		return "Add Terrain"
	}
	return "Edit Terrain"
}

// Update advances the enter/leave transition by one tick.
func (m *Modal) Update() { m.transition.Update() }

// Visible reports whether anything of the dialog should be drawn. It stays
// true while the leave transition runs.
func (m *Modal) Visible() bool { return m.transition.Visible() }

// Alpha is the transition opacity in [0, 1].
func (m *Modal) Alpha() float64 { return m.transition.Alpha() }
