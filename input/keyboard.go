package input

// Keyboard is a read-only view of the keyboard for one frame.
type Keyboard interface {
	// Held reports whether the key is currently down.
	Held(Key) bool
	// JustPressed reports whether the key went down this frame.
	JustPressed(Key) bool
}

// Snapshot is an immutable keyboard state for a single frame.
// The zero value has no keys held.
type Snapshot struct {
	held    map[Key]struct{}
	pressed map[Key]struct{}
}

// NewSnapshot builds a snapshot from the held and just-pressed key sets.
// A pressed key is always held as well.
func NewSnapshot(held, pressed []Key) Snapshot {
	s := Snapshot{
		held:    make(map[Key]struct{}, len(held)+len(pressed)),
		pressed: make(map[Key]struct{}, len(pressed)),
	}
	for _, k := range held {
		s.held[k] = struct{}{}
	}
	for _, k := range pressed {
		s.held[k] = struct{}{}
		s.pressed[k] = struct{}{}
	}
	return s
}

// Held implements Keyboard.
func (s Snapshot) Held(k Key) bool {
	_, ok := s.held[k]
	return ok
}

// JustPressed implements Keyboard.
func (s Snapshot) JustPressed(k Key) bool {
	_, ok := s.pressed[k]
	return ok
}

// heldKeys returns the held keys in no particular order.
func (s Snapshot) heldKeys() []Key {
	keys := make([]Key, 0, len(s.held))
	for k := range s.held {
		keys = append(keys, k)
	}
	return keys
}

// Tracker derives edge triggers from successive frames of held keys.
// It is what turns a level signal (a scripted or polled held set) into
// the JustPressed events the speed controls react to.
type Tracker struct {
	prev map[Key]struct{}
}

// NewTracker creates a tracker with no keys held.
func NewTracker() *Tracker {
	return &Tracker{prev: make(map[Key]struct{})}
}

// Next records the keys held this frame and returns the frame snapshot.
// A key is just pressed when it is held now and was not held last frame.
func (t *Tracker) Next(held ...Key) Snapshot {
	var pressed []Key
	cur := make(map[Key]struct{}, len(held))
	for _, k := range held {
		if _, dup := cur[k]; dup {
			continue
		}
		cur[k] = struct{}{}
		if _, was := t.prev[k]; !was {
			pressed = append(pressed, k)
		}
	}
	t.prev = cur
	return NewSnapshot(held, pressed)
}

// Reset forgets the previous frame so every held key fires again.
func (t *Tracker) Reset() {
	t.prev = make(map[Key]struct{})
}
