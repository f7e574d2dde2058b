// Package progress tracks the lifecycle of one video-processing run as seen
// through server-pushed status events. Every transition comes from the
// server; there is no client-side timer faking progress.
package progress

import (
	"sync"
)

// State is one step of the processing pipeline.
type State string

const (
	StateIdle         State = "idle"
	StateDownloading  State = "downloading"
	StateTranscribing State = "transcribing"
	StateSummarizing  State = "summarizing"
	StateAnalyzing    State = "analyzing"
	StatePreview      State = "preview"
	StateSaving       State = "saving"
	StateIndexing     State = "indexing"
	StateDone         State = "done"
	StateError        State = "error"
)

var validStates = map[State]bool{
	StateIdle:         true,
	StateDownloading:  true,
	StateTranscribing: true,
	StateSummarizing:  true,
	StateAnalyzing:    true,
	StatePreview:      true,
	StateSaving:       true,
	StateIndexing:     true,
	StateDone:         true,
	StateError:        true,
}

// IsTerminal reports whether no further transitions can occur without Reset.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateError
}

// Machine is a small finite-state tracker for one processing run. Safe for
// concurrent use: a stream consumer feeds it while a renderer reads it.
type Machine struct {
	mu       sync.Mutex
	state    State
	progress int
	errMsg   string
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// Apply moves the machine to the state named by a server status event.
// Unknown state names and transitions out of a terminal state are ignored,
// a late status frame must not resurrect a finished run.
func (m *Machine) Apply(status string, progress int) bool {
	next := State(status)
	if !validStates[next] {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.IsTerminal() {
		return false
	}

	m.state = next
	if progress >= 0 && progress <= 100 {
		m.progress = progress
	}
	if next == StateDone {
		m.progress = 100
	}
	return true
}

// Fail moves to the error state from any non-terminal state.
func (m *Machine) Fail(message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.IsTerminal() {
		return false
	}
	m.state = StateError
	m.errMsg = message
	return true
}

// Reset returns unconditionally to idle and clears all derived state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateIdle
	m.progress = 0
	m.errMsg = ""
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Progress() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

func (m *Machine) ErrMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}
