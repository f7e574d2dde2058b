package progress

import "testing"

func TestMachineFollowsServerStatuses(t *testing.T) {
	m := NewMachine()

	steps := []struct {
		status   string
		progress int
	}{
		{"downloading", 10},
		{"transcribing", 40},
		{"summarizing", 70},
		{"saving", 90},
		{"done", 100},
	}
	for _, step := range steps {
		if !m.Apply(step.status, step.progress) {
			t.Fatalf("Apply(%q) rejected", step.status)
		}
	}

	if m.State() != StateDone {
		t.Errorf("expected done, got %s", m.State())
	}
	if m.Progress() != 100 {
		t.Errorf("expected progress 100, got %d", m.Progress())
	}
}

func TestMachineIgnoresUnknownStatus(t *testing.T) {
	m := NewMachine()
	if m.Apply("teleporting", 50) {
		t.Error("unknown status must be rejected")
	}
	if m.State() != StateIdle {
		t.Errorf("state changed on unknown status: %s", m.State())
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	m := NewMachine()
	m.Apply("downloading", 10)
	m.Fail("network down")

	if m.Apply("transcribing", 50) {
		t.Error("transition out of error without Reset must be rejected")
	}
	if m.Fail("second failure") {
		t.Error("Fail on a terminal state must be a no-op")
	}
	if m.State() != StateError {
		t.Errorf("expected error state, got %s", m.State())
	}
	if m.ErrMessage() != "network down" {
		t.Errorf("original error message lost: %q", m.ErrMessage())
	}
}

func TestErrorReachableFromAnyNonTerminalState(t *testing.T) {
	for _, state := range []string{"idle", "downloading", "transcribing", "summarizing", "analyzing", "preview", "saving", "indexing"} {
		m := NewMachine()
		if state != "idle" {
			m.Apply(state, 0)
		}
		if !m.Fail("boom") {
			t.Errorf("Fail from %s rejected", state)
		}
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	m := NewMachine()
	m.Apply("downloading", 30)
	m.Fail("broken")
	m.Reset()

	if m.State() != StateIdle {
		t.Errorf("expected idle after reset, got %s", m.State())
	}
	if m.Progress() != 0 || m.ErrMessage() != "" {
		t.Error("derived state not cleared on reset")
	}

	if !m.Apply("downloading", 5) {
		t.Error("machine must accept transitions again after reset")
	}
}
