package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

// taskTimeout bounds a single run of a maintenance task.
const taskTimeout = time.Minute

// parser accepts descriptors (@every 1m, @hourly) and cron expressions with
// an optional leading seconds field.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// TaskFunc is the function signature for scheduled tasks
type TaskFunc func(ctx context.Context) error

// Scheduler runs named background tasks on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	tasks   map[string]cron.EntryID
	specs   map[string]string
	mu      sync.RWMutex
	running bool
}

// NewScheduler creates a new scheduler
func NewScheduler(log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithParser(parser)),
		log:   log.With(logger.Scope("scheduler")),
		tasks: make(map[string]cron.EntryID),
		specs: make(map[string]string),
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop waits for running tasks to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	select {
	case <-s.cron.Stop().Done():
		s.log.Info("scheduler stopped gracefully")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timeout")
	}
	s.running = false
	return nil
}

// AddTask schedules task under name, replacing any task with the same name.
func (s *Scheduler) AddTask(name, schedule string, task TaskFunc) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("task %s: invalid schedule %q: %w", name, schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.tasks[name]; ok {
		s.cron.Remove(entryID)
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runTask(name, task)
	})
	if err != nil {
		return err
	}

	s.tasks[name] = entryID
	s.specs[name] = schedule
	s.log.Info("added task", slog.String("name", name), slog.String("schedule", schedule))
	return nil
}

// RemoveTask removes a scheduled task
func (s *Scheduler) RemoveTask(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.tasks[name]; ok {
		s.cron.Remove(entryID)
		delete(s.tasks, name)
		delete(s.specs, name)
		s.log.Info("removed task", slog.String("name", name))
	}
}

func (s *Scheduler) runTask(name string, task TaskFunc) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scheduled task panicked", slog.String("name", name), slog.Any("panic", r))
		}
	}()

	if err := task(ctx); err != nil {
		s.log.Error("scheduled task failed",
			slog.String("name", name),
			logger.Error(err),
			slog.Duration("duration", time.Since(start)))
		return
	}
	s.log.Debug("scheduled task completed",
		slog.String("name", name),
		slog.Duration("duration", time.Since(start)))
}

// ListTasks returns the sorted names of all scheduled tasks
func (s *Scheduler) ListTasks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TaskInfo describes a scheduled task
type TaskInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"next_run"`
	PrevRun  time.Time `json:"prev_run,omitempty"`
}

// Tasks returns information about all scheduled tasks, sorted by name.
func (s *Scheduler) Tasks() []TaskInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := make([]TaskInfo, 0, len(s.tasks))
	for name, entryID := range s.tasks {
		entry := s.cron.Entry(entryID)
		info = append(info, TaskInfo{
			Name:     name,
			Schedule: s.specs[name],
			NextRun:  entry.Next,
			PrevRun:  entry.Prev,
		})
	}
	sort.Slice(info, func(i, j int) bool { return info[i].Name < info[j].Name })
	return info
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
