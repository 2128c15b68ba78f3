package mdpress

import (
	"path/filepath"
	"testing"

	"github.com/eringen/mdpress/publisher"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndList(t *testing.T) {
	s := newTestStore(t)

	err := s.RecordPublish("First Post", publisher.Result{
		Success: true,
		PostID:  10,
		URL:     "https://example.com/?p=10",
		Status:  "draft",
	})
	if err != nil {
		t.Fatalf("RecordPublish() error: %v", err)
	}
	err = s.RecordPublish("Second Post", publisher.Result{
		Error: "authentication failed: 401 - Unauthorized",
	})
	if err != nil {
		t.Fatalf("RecordPublish() error: %v", err)
	}

	records, err := s.ListPublishes(50)
	if err != nil {
		t.Fatalf("ListPublishes() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// Newest first.
	if records[0].Title != "Second Post" || records[0].Success {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[0].Error == "" {
		t.Error("failure record should carry the error message")
	}
	if records[1].Title != "First Post" || !records[1].Success {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[1].PostID != 10 || records[1].URL != "https://example.com/?p=10" {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[1].CreatedAt == "" {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreListLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.RecordPublish("Post", publisher.Result{Success: true}); err != nil {
			t.Fatalf("RecordPublish() error: %v", err)
		}
	}
	records, err := s.ListPublishes(3)
	if err != nil {
		t.Fatalf("ListPublishes() error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len(records) = %d, want 3", len(records))
	}
}

func TestStoreListEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.ListPublishes(10)
	if err != nil {
		t.Fatalf("ListPublishes() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
