package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingSender) SendText(_ context.Context, _ int64, text string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

func testDelays() []Delay {
	return []Delay{
		{After: 5 * time.Millisecond, Text: "first"},
		{After: 10 * time.Millisecond, Text: "second"},
		{After: 15 * time.Millisecond, Text: "third"},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestArmedSetFiresAllReminders(t *testing.T) {
	sender := &recordingSender{}
	s := New(sender, zap.NewNop(), testDelays())

	s.Arm(1)
	waitFor(t, func() bool { return sender.count() == 3 })

	sender.mu.Lock()
	defer sender.mu.Unlock()
	want := []string{"first", "second", "third"}
	for i, text := range want {
		if sender.texts[i] != text {
			t.Errorf("reminder %d = %q, want %q", i, sender.texts[i], text)
		}
	}
}

func TestDisarmCancelsPendingReminders(t *testing.T) {
	sender := &recordingSender{}
	s := New(sender, zap.NewNop(), testDelays())

	s.Arm(1)
	s.Disarm(1)

	time.Sleep(50 * time.Millisecond)
	if n := sender.count(); n != 0 {
		t.Errorf("expected no reminders after disarm, got %d", n)
	}
	if s.Armed(1) {
		t.Error("chat must not be armed after disarm")
	}
}

func TestRearmRetiresPreviousSet(t *testing.T) {
	sender := &recordingSender{}
	s := New(sender, zap.NewNop(), testDelays())

	// The second Arm supersedes the first before anything fires, so exactly
	// one full set is delivered.
	s.Arm(1)
	s.Arm(1)

	waitFor(t, func() bool { return sender.count() >= 3 })
	time.Sleep(50 * time.Millisecond)

	if n := sender.count(); n != 3 {
		t.Errorf("expected exactly 3 reminders, got %d", n)
	}
}

func TestChatsAreIndependent(t *testing.T) {
	sender := &recordingSender{}
	s := New(sender, zap.NewNop(), testDelays())

	s.Arm(1)
	s.Arm(2)
	s.Disarm(1)

	waitFor(t, func() bool { return sender.count() == 3 })
	time.Sleep(50 * time.Millisecond)

	if n := sender.count(); n != 3 {
		t.Errorf("disarming chat 1 must not affect chat 2, got %d sends", n)
	}
	if s.Armed(1) || !s.Armed(2) {
		t.Errorf("armed states wrong: chat1=%v chat2=%v", s.Armed(1), s.Armed(2))
	}
}

func TestDefaultsCoverThreeOffsets(t *testing.T) {
	d := Defaults(30*time.Minute, 6*time.Hour, 12*time.Hour)
	if len(d) != 3 {
		t.Fatalf("expected 3 delays, got %d", len(d))
	}
	if d[0].After != 30*time.Minute || d[1].After != 6*time.Hour || d[2].After != 12*time.Hour {
		t.Errorf("offsets = %v %v %v", d[0].After, d[1].After, d[2].After)
	}
	for i, delay := range d {
		if delay.Text == "" {
			t.Errorf("delay %d has empty text", i)
		}
	}
}
