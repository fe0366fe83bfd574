package input

import (
	"sync"

	"mini-voxel/internal/world"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionBreak
	ActionPlace
	ActionHotbar1
	ActionHotbar2
	ActionHotbar3
	ActionHotbar4
	ActionHotbar5
	ActionHotbar6
	ActionHotbar7
	ActionHotbar8
	ActionHotbar9
	ActionPause
	ActionToggleProfiling
	ActionCount // Sentinel value for array sizing
)

// LookDelta is a change of view orientation in degrees.
type LookDelta struct {
	Yaw   float64
	Pitch float64
}

// Snapshot is everything the simulation needs from the input devices for
// one tick. It is a plain value; the simulation never reads devices.
type Snapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	Look LookDelta

	Break bool
	Place bool
	// Select is the block type chosen this tick, or BlockTypeAir if the
	// selection did not change.
	Select world.BlockType
}

// Manager tracks logical action state fed by a device layer and produces
// one Snapshot per tick.
type Manager struct {
	mu sync.RWMutex

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	look LookDelta

	hotbar []world.BlockType
}

// NewManager creates a Manager whose hotbar actions select the given block
// types in order.
func NewManager(hotbar ...world.BlockType) *Manager {
	if len(hotbar) > 9 {
		hotbar = hotbar[:9]
	}
	return &Manager{hotbar: append([]world.BlockType(nil), hotbar...)}
}

// Press marks an action held. Repeated presses do not re-trigger the edge.
func (m *Manager) Press(action Action) {
	m.set(action, true)
}

// Release marks an action released.
func (m *Manager) Release(action Action) {
	m.set(action, false)
}

func (m *Manager) set(act Action, isPressed bool) {
	if act < 0 || act >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Detect edges immediately when event arrives
	if isPressed && !m.currentState[act] {
		m.justPressed[act] = true
	}
	if !isPressed && m.currentState[act] {
		m.justReleased[act] = true
	}
	m.currentState[act] = isPressed
}

// AddLook accumulates a view orientation change until the next Snapshot.
func (m *Manager) AddLook(yaw, pitch float64) {
	m.mu.Lock()
	m.look.Yaw += yaw
	m.look.Pitch += pitch
	m.mu.Unlock()
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// Snapshot builds the input for this tick and then resets edge flags and
// the accumulated look delta. Movement is level-triggered; break, place
// and hotbar selection fire once per press.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Forward:  m.currentState[ActionMoveForward],
		Backward: m.currentState[ActionMoveBackward],
		Left:     m.currentState[ActionMoveLeft],
		Right:    m.currentState[ActionMoveRight],
		Jump:     m.currentState[ActionJump],
		Look:     m.look,
		Break:    m.justPressed[ActionBreak],
		Place:    m.justPressed[ActionPlace],
	}
	for i, t := range m.hotbar {
		if m.justPressed[ActionHotbar1+Action(i)] {
			s.Select = t
		}
	}

	m.postUpdate()
	return s
}

// PostUpdate clears edge flags and the look delta without building a
// snapshot, for frames in which the simulation does not step.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	m.postUpdate()
	m.mu.Unlock()
}

func (m *Manager) postUpdate() {
	for i := Action(0); i < ActionCount; i++ {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
	m.look = LookDelta{}
}
