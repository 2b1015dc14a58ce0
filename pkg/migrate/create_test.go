package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateAtUsesTimestampAndSlug(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	path, err := createAt(dir, "Vendor payout  notes", now)
	if err != nil {
		t.Fatalf("createAt: %v", err)
	}
	if got := filepath.Base(path); got != "20260402083000_vendor_payout_notes.sql" {
		t.Fatalf("unexpected filename %s", got)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(body), "-- undo vendor_payout_notes") {
		t.Fatalf("unexpected body:\n%s", body)
	}

	if _, err := createAt(dir, "vendor payout notes", now); err == nil {
		t.Fatal("expected an error when the file already exists")
	}
}
