package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func noop(context.Context) error { return nil }

func TestScheduler_AddTask(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"descriptor", "@every 1m", false},
		{"five fields", "*/5 * * * *", false},
		{"six fields", "0 */5 * * * *", false},
		{"garbage", "every minute", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler()
			err := s.AddTask("sweep", tt.schedule, noop)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddTask(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
			if !tt.wantErr && len(s.ListTasks()) != 1 {
				t.Errorf("expected 1 task, got %v", s.ListTasks())
			}
		})
	}
}

func TestScheduler_ReplaceAndRemove(t *testing.T) {
	s := newTestScheduler()

	if err := s.AddTask("b", "@every 1m", noop); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask("a", "@every 1m", noop); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask("a", "@every 2m", noop); err != nil {
		t.Fatal(err)
	}

	got := s.ListTasks()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ListTasks() = %v, want [a b]", got)
	}
	if n := len(s.cron.Entries()); n != 2 {
		t.Errorf("replaced task left %d cron entries, want 2", n)
	}

	info := s.Tasks()
	if info[0].Schedule != "@every 2m" {
		t.Errorf("Tasks()[0].Schedule = %q, want @every 2m", info[0].Schedule)
	}

	s.RemoveTask("a")
	s.RemoveTask("missing")
	if got := s.ListTasks(); len(got) != 1 || got[0] != "b" {
		t.Errorf("ListTasks() after remove = %v", got)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if s.IsRunning() {
		t.Fatal("new scheduler should not be running")
	}
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.IsRunning() {
		t.Fatal("scheduler should be running after Start")
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsRunning() {
		t.Error("scheduler should not be running after Stop")
	}
}

func TestScheduler_RunTask(t *testing.T) {
	s := newTestScheduler()

	ran := false
	s.runTask("ok", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("task context should carry a deadline")
		}
		ran = true
		return nil
	})
	if !ran {
		t.Error("task did not run")
	}

	// failures and panics are logged, not propagated
	s.runTask("fails", func(context.Context) error { return errors.New("boom") })
	s.runTask("panics", func(context.Context) error { panic("boom") })
}
