package instance

import "testing"

func TestGetIDPrefersExplicitID(t *testing.T) {
	t.Setenv("VENUEHUB_INSTANCE_ID", "api-7")
	t.Setenv("DYNO", "web.1")

	if got := GetID("local"); got != "api-7" {
		t.Fatalf("expected api-7, got %q", got)
	}
}

func TestGetIDFallsBackToDyno(t *testing.T) {
	t.Setenv("VENUEHUB_INSTANCE_ID", "")
	t.Setenv("DYNO", "worker.2")

	if got := GetID("local"); got != "worker.2" {
		t.Fatalf("expected worker.2, got %q", got)
	}
}
