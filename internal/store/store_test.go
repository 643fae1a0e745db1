package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
)

const testExport = `[1/1/2024, 9:00:00] Alice: good morning
[1/1/2024, 9:01:00] Bob: hey
[1/1/2024, 9:02:00] Alice: <image omitted>
[1/1/2024, 9:03:00] Alice: Voice call - 5 minutes
[2/1/2024, 10:00:00] Bob: Missed video call`

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "chats.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func saveFixture(t *testing.T, db *DB, name string) *chat.Result {
	t.Helper()
	res, err := chat.Parse(strings.NewReader(testExport))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if err := db.SaveResult(name, res); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	return res
}

func TestSaveAndQuery(t *testing.T) {
	db := openTestDB(t)
	saveFixture(t, db, "holiday")

	row, err := db.Chat("holiday")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if row == nil {
		t.Fatal("chat not found after save")
	}
	if row.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", row.TotalMessages)
	}
	if row.TotalCalls != 2 {
		t.Errorf("TotalCalls = %d, want 2", row.TotalCalls)
	}
	if row.ChatType != "individual" {
		t.Errorf("ChatType = %q, want individual", row.ChatType)
	}

	parts, err := db.Participants("holiday")
	if err != nil {
		t.Fatalf("Participants: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("participants = %d, want 2", len(parts))
	}
	if parts[0].Name != "Alice" || parts[0].MessageCount != 2 {
		t.Errorf("parts[0] = %+v, want Alice with 2", parts[0])
	}
	if parts[0].MediaCount != 1 {
		t.Errorf("Alice media = %d, want 1", parts[0].MediaCount)
	}
}

func TestSaveResult_Replaces(t *testing.T) {
	db := openTestDB(t)
	saveFixture(t, db, "holiday")

	// Re-import a smaller version of the same chat.
	res, err := chat.Parse(strings.NewReader("[1/1/2024, 9:00:00] Alice: only one"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := db.SaveResult("holiday", res); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	row, err := db.Chat("holiday")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if row.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1 after re-import", row.TotalMessages)
	}

	parts, _ := db.Participants("holiday")
	if len(parts) != 1 {
		t.Errorf("participants = %d, want 1 after re-import", len(parts))
	}
}

func TestTotals(t *testing.T) {
	db := openTestDB(t)
	saveFixture(t, db, "holiday")
	saveFixture(t, db, "work")

	totals, err := db.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Chats != 2 {
		t.Errorf("Chats = %d, want 2", totals.Chats)
	}
	if totals.Messages != 6 {
		t.Errorf("Messages = %d, want 6", totals.Messages)
	}
	if totals.Calls != 4 {
		t.Errorf("Calls = %d, want 4", totals.Calls)
	}
	if totals.MissedCalls != 2 {
		t.Errorf("MissedCalls = %d, want 2", totals.MissedCalls)
	}
	if totals.CallMinutes != 10 {
		t.Errorf("CallMinutes = %d, want 10", totals.CallMinutes)
	}
	if totals.Participants != 2 {
		t.Errorf("Participants = %d, want 2", totals.Participants)
	}
}

func TestTopSenders(t *testing.T) {
	db := openTestDB(t)
	saveFixture(t, db, "holiday")

	senders, err := db.TopSenders(5)
	if err != nil {
		t.Fatalf("TopSenders: %v", err)
	}
	if len(senders) != 2 {
		t.Fatalf("senders = %d, want 2", len(senders))
	}
	if senders[0].Sender != "Alice" || senders[0].Messages != 2 {
		t.Errorf("senders[0] = %+v, want Alice with 2", senders[0])
	}
}

func TestChat_Missing(t *testing.T) {
	db := openTestDB(t)

	row, err := db.Chat("nope")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if row != nil {
		t.Errorf("row = %+v, want nil", row)
	}
}
