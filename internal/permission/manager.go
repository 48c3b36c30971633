// Package permission models the runtime permission boundary: a persisted
// grant store standing in for the host platform, a requester that asks the
// user, and a per-screen state machine that delivers answers through a
// one-shot callback.
package permission

import (
	"fmt"
	"log/slog"
)

// Name identifies a runtime permission
type Name string

// WriteExternalStorage gates writes to the external documents directory
const WriteExternalStorage Name = "WRITE_EXTERNAL_STORAGE"

// State is the request state of a permission within one screen session
type State int

const (
	Unrequested State = iota
	Requested
	Granted
	Denied
)

func (s State) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case Requested:
		return "requested"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Requester asks the user to grant a permission and reports the answer
type Requester interface {
	Request(name Name) (bool, error)
}

// Callback receives the outcome of a permission request
type Callback func(granted bool)

// Manager tracks request state and answers permission checks.
// It is used from a single event loop and is not safe for concurrent use.
type Manager struct {
	grants    *GrantStore
	requester Requester
	logger    *slog.Logger
	states    map[Name]State
	pending   []pendingResult
}

type pendingResult struct {
	name     Name
	granted  bool
	callback Callback
}

// NewManager creates a Manager. Initial state is Unrequested for every
// permission, or Granted when the grant store already holds a grant.
func NewManager(grants *GrantStore, requester Requester, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		grants:    grants,
		requester: requester,
		logger:    logger,
		states:    make(map[Name]State),
	}
}

// Check re-queries the grant store. A failed lookup counts as not granted.
func (m *Manager) Check(name Name) bool {
	granted, err := m.grants.IsGranted(name)
	if err != nil {
		m.logger.Warn("permission check failed", "permission", name, "err", err)
		return false
	}
	if granted {
		m.states[name] = Granted
	}
	return granted
}

// State returns the current request state of name
func (m *Manager) State(name Name) State {
	if m.Check(name) {
		return Granted
	}
	state, ok := m.states[name]
	if !ok || state == Granted {
		// never asked this session, or the grant was revoked since
		return Unrequested
	}
	return state
}

// Request asks for name and queues the answer for delivery through callback
// on the next Dispatch. Only Unrequested and Denied permissions move to
// Requested; a request already in flight is not repeated.
func (m *Manager) Request(name Name, callback Callback) error {
	switch m.State(name) {
	case Requested:
		return nil
	case Granted:
		m.pending = append(m.pending, pendingResult{name: name, granted: true, callback: callback})
		return nil
	}

	m.states[name] = Requested
	m.logger.Info("requesting permission", "permission", name)

	granted, err := m.requester.Request(name)
	if err != nil {
		m.states[name] = Denied
		return fmt.Errorf("permission request for %s failed: %w", name, err)
	}
	if granted {
		if err := m.grants.Grant(name); err != nil {
			m.logger.Error("failed to record permission grant", "permission", name, "err", err)
			granted = false
		}
	}

	m.pending = append(m.pending, pendingResult{name: name, granted: granted, callback: callback})
	return nil
}

// Dispatch delivers queued request results, settling each permission into
// Granted or Denied before invoking its callback once.
func (m *Manager) Dispatch() int {
	results := m.pending
	m.pending = nil

	for _, r := range results {
		if r.granted {
			m.states[r.name] = Granted
		} else {
			m.states[r.name] = Denied
		}
		m.logger.Info("permission result", "permission", r.name, "state", m.states[r.name])
		if r.callback != nil {
			r.callback(r.granted)
		}
	}
	return len(results)
}

// Grants returns the underlying grant store
func (m *Manager) Grants() *GrantStore {
	return m.grants
}
