package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dlawton/chimeclock/internal/weather"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "alerts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleAlert(id string) weather.Alert {
	onset := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return weather.Alert{
		ID:          id,
		Status:      "Actual",
		Severity:    "Severe",
		MessageType: "Alert",
		Onset:       onset,
		Expires:     onset.Add(6 * time.Hour),
		Event:       "Gale Warning",
		Headline:    "Gale Warning issued",
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := []weather.Alert{sampleAlert("a"), sampleAlert("b")}

	if err := s.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(want[0]) || !got[1].Equal(want[1]) {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty set, got %+v", got)
	}
}

func TestSave_RewritesWholeSet(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(context.Background(), []weather.Alert{sampleAlert("a"), sampleAlert("b")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), []weather.Alert{sampleAlert("b")}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("want only b, got %+v", got)
	}
}
