// Package session owns the supervision lifecycle state machine. It is the
// only place the session phase changes; every consumer reads phase through
// an injected *Controller rather than ambient state.
package session

// Phase is the three-valued supervision lifecycle state.
type Phase int

const (
	// PhaseIdle means no monitoring has been requested.
	PhaseIdle Phase = iota
	// PhaseMonitoring means the operator requested start and the UI is live.
	PhaseMonitoring
	// PhaseStoppedByServer means monitoring ended due to a monitor
	// notification or a connection loss. Behaviorally equivalent to idle:
	// the operator may start again.
	PhaseStoppedByServer
)

// String returns the phase label used in the status bar.
func (p Phase) String() string {
	switch p {
	case PhaseMonitoring:
		return "monitoring"
	case PhaseStoppedByServer:
		return "stopped-by-server"
	default:
		return "idle"
	}
}

// Controller is the supervision session state machine. Transitions are
// optimistic: the phase flips before any outbound command is written, and
// no acknowledgment is ever awaited. All methods must be called from the
// single UI event loop; the controller carries no locking.
type Controller struct {
	phase Phase
}

// New returns a controller in the idle phase.
func New() *Controller {
	return &Controller{phase: PhaseIdle}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Monitoring reports whether live frames and alerts should be consumed.
func (c *Controller) Monitoring() bool {
	return c.phase == PhaseMonitoring
}

// Start handles the operator's start request. Returns true when the
// transition happened and a start command is owed to the monitor.
func (c *Controller) Start() bool {
	if c.phase == PhaseMonitoring {
		return false
	}
	c.phase = PhaseMonitoring
	return true
}

// Stop handles the operator's stop request. Returns true when the
// transition happened and a stop command is owed to the monitor.
func (c *Controller) Stop() bool {
	if c.phase != PhaseMonitoring {
		return false
	}
	c.phase = PhaseIdle
	return true
}

// ServerStop handles a monitor-initiated stop notification. No outbound
// command is owed; the monitor already knows. Returns true when the UI
// must reset.
func (c *Controller) ServerStop() bool {
	if c.phase != PhaseMonitoring {
		return false
	}
	c.phase = PhaseStoppedByServer
	return true
}

// Disconnect handles a transport-level connection loss, which is an
// implicit stop. No outbound command is owed; the channel is gone.
// Returns true when the UI must reset.
func (c *Controller) Disconnect() bool {
	if c.phase != PhaseMonitoring {
		return false
	}
	c.phase = PhaseStoppedByServer
	return true
}
