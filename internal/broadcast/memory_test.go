package broadcast

import "testing"

func TestMemoryRecordsMessages(t *testing.T) {
	m := NewMemory()
	m.Broadcast("one")
	m.Broadcast("two")
	got := m.Messages()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("unexpected messages: %v", got)
	}
}

func TestMemoryMessagesReturnsCopy(t *testing.T) {
	m := NewMemory()
	m.Broadcast("one")
	got := m.Messages()
	got[0] = "mutated"
	if m.Messages()[0] != "one" {
		t.Fatalf("internal slice mutated via returned copy")
	}
}
