package dashboard

// Toggle is a remote boolean setting with optimistic UI state.
//
// Begin flips the displayed value and marks the toggle pending. The
// caller then issues the request and settles with Confirm or Revert.
// A failed toggle stays reverted until the user presses again; there is
// no automatic retry.
type Toggle struct {
	On      bool
	Pending bool
	Failed  bool
}

// Begin flips the toggle optimistically and returns the requested value.
// It reports false when a request is already in flight.
func (t *Toggle) Begin() (want bool, ok bool) {
	if t.Pending {
		return t.On, false
	}
	t.On = !t.On
	t.Pending = true
	t.Failed = false
	return t.On, true
}

// Confirm settles a pending toggle on its optimistic value.
func (t *Toggle) Confirm() {
	t.Pending = false
	t.Failed = false
}

// Revert undoes the optimistic flip and marks the toggle failed.
func (t *Toggle) Revert() {
	if t.Pending {
		t.On = !t.On
	}
	t.Pending = false
	t.Failed = true
}

// Set overwrites the toggle with an authoritative server value. A pending
// toggle is left alone so the in-flight request decides. Failed survives
// until the next Begin.
func (t *Toggle) Set(on bool) {
	if t.Pending {
		return
	}
	t.On = on
}

// Label picks the text for the toggle's current state.
func (t Toggle) Label(on, off, saving, failed string) string {
	switch {
	case t.Pending:
		return saving
	case t.Failed:
		return failed
	case t.On:
		return on
	default:
		return off
	}
}
