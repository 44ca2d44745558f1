package mode

// Mode is the editor's interaction mode. Normal handles navigation and
// commands; insert routes keys to the active text editor.
type Mode int

const (
	Normal Mode = iota
	Insert
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

type subscriber struct {
	id int
	fn func(Mode)
}

// Machine is the two-state mode machine. Transitions to the current
// state are no-ops and do not notify, so commands may unconditionally
// call EnterInsert without causing redundant notifications.
type Machine struct {
	current Mode
	nextID  int
	subs    []subscriber
}

// NewMachine creates a machine in normal mode.
func NewMachine() *Machine {
	return &Machine{current: Normal}
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	return m.current
}

// Set transitions to the given mode, notifying subscribers in
// subscription order. Idempotent.
func (m *Machine) Set(target Mode) {
	if m.current == target {
		return
	}
	m.current = target
	for _, sub := range m.subs {
		sub.fn(target)
	}
}

// EnterInsert switches to insert mode.
func (m *Machine) EnterInsert() {
	m.Set(Insert)
}

// EnterNormal switches to normal mode.
func (m *Machine) EnterNormal() {
	m.Set(Normal)
}

// Subscribe registers a transition observer and returns a cancel
// function that deregisters exactly this subscriber.
func (m *Machine) Subscribe(fn func(Mode)) func() {
	id := m.nextID
	m.nextID++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range m.subs {
			if sub.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}
