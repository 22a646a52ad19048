package session

import "testing"

func TestLifecycle(t *testing.T) {
	c := New()
	if c.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v, want idle", c.Phase())
	}

	if !c.Start() {
		t.Fatal("Start from idle should transition and owe a command")
	}
	if c.Phase() != PhaseMonitoring {
		t.Fatalf("phase = %v, want monitoring", c.Phase())
	}

	if c.Start() {
		t.Error("Start while monitoring must be a no-op")
	}

	if !c.Stop() {
		t.Fatal("Stop from monitoring should transition and owe a command")
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}

	if c.Stop() {
		t.Error("Stop while idle must be a no-op")
	}
}

func TestServerStop(t *testing.T) {
	c := New()
	c.Start()
	if !c.ServerStop() {
		t.Fatal("ServerStop while monitoring should reset")
	}
	if c.Phase() != PhaseStoppedByServer {
		t.Fatalf("phase = %v, want stopped-by-server", c.Phase())
	}
	if c.ServerStop() {
		t.Error("ServerStop outside monitoring must be a no-op")
	}

	// The controller has no terminal state: restart is allowed.
	if !c.Start() {
		t.Error("Start after server stop should transition")
	}
}

func TestDisconnectIsImplicitStop(t *testing.T) {
	c := New()
	c.Start()
	if !c.Disconnect() {
		t.Fatal("Disconnect while monitoring should reset")
	}
	if c.Phase() != PhaseStoppedByServer {
		t.Fatalf("phase = %v, want stopped-by-server", c.Phase())
	}

	// Disconnect while already idle changes nothing.
	c2 := New()
	if c2.Disconnect() {
		t.Error("Disconnect while idle must be a no-op")
	}
	if c2.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c2.Phase())
	}
}

func TestPhaseLabels(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseMonitoring, "monitoring"},
		{PhaseStoppedByServer, "stopped-by-server"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
