// Package cron manages scheduled agent prompts.
//
// Jobs persist as JSON:
//
//	{ "version": 1, "jobs": [ { "id":"…", "name":"…", "enabled":true,
//	    "schedule":{"kind":"every","everyMs":…},
//	    "message":"…", "deleteAfterRun":false, … } ] }
package cron

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// Schedule describes when a job fires.
type Schedule struct {
	Kind    string `json:"kind"`              // "every" | "cron" | "at"
	EveryMs int64  `json:"everyMs,omitempty"` // interval
	Expr    string `json:"expr,omitempty"`    // cron expression
	AtMs    int64  `json:"atMs,omitempty"`    // one-time, unix millis
}

// Job is one scheduled agent prompt.
type Job struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Enabled        bool     `json:"enabled"`
	Schedule       Schedule `json:"schedule"`
	Message        string   `json:"message"`
	DeleteAfterRun bool     `json:"deleteAfterRun"`
	CreatedAtMs    int64    `json:"createdAtMs"`
	LastRunAtMs    int64    `json:"lastRunAtMs,omitempty"`
	LastStatus     string   `json:"lastStatus,omitempty"`
}

type store struct {
	Version int   `json:"version"`
	Jobs    []Job `json:"jobs"`
}

// OnJobFunc runs when a job fires; it returns the agent's response text.
type OnJobFunc func(ctx context.Context, job Job) (string, error)

// Service schedules and persists jobs. Interval and one-time jobs use plain
// timers; cron-expression jobs go through robfig/cron.
type Service struct {
	storePath string
	onJob     OnJobFunc

	mu    sync.Mutex
	store store

	timers    map[string]*time.Timer
	robfig    *robfigcron.Cron
	robfigIDs map[string]robfigcron.EntryID
}

// NewService creates a Service persisting to storePath
// (e.g. ~/.parlance/cron/jobs.json).
func NewService(storePath string) *Service {
	return &Service{
		storePath: storePath,
		timers:    make(map[string]*time.Timer),
		robfig:    robfigcron.New(),
		robfigIDs: make(map[string]robfigcron.EntryID),
	}
}

// SetOnJob registers the callback executed when a job fires.
// Must be set before Start().
func (s *Service) SetOnJob(fn OnJobFunc) { s.onJob = fn }

// Load reads the persisted jobs without arming any schedules. Useful for
// inspection commands that never run jobs.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Start loads jobs from disk and arms all schedules. Blocks until ctx is
// cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		slog.Warn("cron: load failed, starting empty", "err", err)
	}
	for i := range s.store.Jobs {
		s.armLocked(ctx, s.store.Jobs[i])
	}
	count := len(s.store.Jobs)
	s.mu.Unlock()

	s.robfig.Start()
	slog.Info("cron: started", "jobs", count)

	<-ctx.Done()

	s.mu.Lock()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = make(map[string]*time.Timer)
	s.mu.Unlock()
	s.robfig.Stop()
	return ctx.Err()
}

// AddJob creates, persists, and arms a new job.
func (s *Service) AddJob(ctx context.Context, name, message string, sched Schedule, deleteAfterRun bool) (string, error) {
	if err := validateSchedule(sched); err != nil {
		return "", err
	}

	id := newJobID()
	job := Job{
		ID:             id,
		Name:           name,
		Enabled:        true,
		Schedule:       sched,
		Message:        message,
		DeleteAfterRun: deleteAfterRun,
		CreatedAtMs:    time.Now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Jobs = append(s.store.Jobs, job)
	s.saveLocked()
	s.armLocked(ctx, job)
	slog.Info("cron: added job", "name", name, "id", id, "kind", sched.Kind)
	return id, nil
}

// RemoveJob disarms and deletes the job with the given id.
func (s *Service) RemoveJob(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// ListJobs returns a snapshot of all jobs.
func (s *Service) ListJobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.store.Jobs))
	copy(out, s.store.Jobs)
	return out
}

func validateSchedule(sched Schedule) error {
	switch sched.Kind {
	case "every":
		if sched.EveryMs <= 0 {
			return fmt.Errorf("every schedule needs a positive everyMs")
		}
	case "cron":
		if _, err := robfigcron.ParseStandard(sched.Expr); err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", sched.Expr, err)
		}
	case "at":
		if sched.AtMs <= time.Now().UnixMilli() {
			return fmt.Errorf("at schedule must be in the future")
		}
	default:
		return fmt.Errorf("unknown schedule kind %q", sched.Kind)
	}
	return nil
}

// armLocked schedules job. Caller holds s.mu.
func (s *Service) armLocked(ctx context.Context, job Job) {
	if !job.Enabled {
		return
	}
	switch job.Schedule.Kind {
	case "every":
		interval := time.Duration(job.Schedule.EveryMs) * time.Millisecond
		var run func()
		run = func() {
			s.fire(ctx, job.ID)
			s.mu.Lock()
			// Re-arm only while the job still exists.
			if _, alive := s.timers[job.ID]; alive {
				s.timers[job.ID] = time.AfterFunc(interval, run)
			}
			s.mu.Unlock()
		}
		s.timers[job.ID] = time.AfterFunc(interval, run)
	case "cron":
		id, err := s.robfig.AddFunc(job.Schedule.Expr, func() { s.fire(ctx, job.ID) })
		if err != nil {
			slog.Warn("cron: invalid expression", "job", job.ID, "expr", job.Schedule.Expr, "err", err)
			return
		}
		s.robfigIDs[job.ID] = id
	case "at":
		delay := time.Until(time.UnixMilli(job.Schedule.AtMs))
		if delay < 0 {
			delay = 0
		}
		s.timers[job.ID] = time.AfterFunc(delay, func() { s.fire(ctx, job.ID) })
	}
}

// fire runs the job callback and updates its state.
func (s *Service) fire(ctx context.Context, jobID string) {
	s.mu.Lock()
	var job *Job
	for i := range s.store.Jobs {
		if s.store.Jobs[i].ID == jobID {
			job = &s.store.Jobs[i]
			break
		}
	}
	if job == nil || s.onJob == nil {
		s.mu.Unlock()
		return
	}
	snapshot := *job
	s.mu.Unlock()

	slog.Info("cron: executing job", "name", snapshot.Name, "id", snapshot.ID)
	_, err := s.onJob(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.store.Jobs {
		if s.store.Jobs[i].ID != jobID {
			continue
		}
		s.store.Jobs[i].LastRunAtMs = time.Now().UnixMilli()
		if err != nil {
			s.store.Jobs[i].LastStatus = "error"
			slog.Error("cron: job failed", "name", snapshot.Name, "err", err)
		} else {
			s.store.Jobs[i].LastStatus = "ok"
		}
		break
	}
	if snapshot.DeleteAfterRun || snapshot.Schedule.Kind == "at" {
		s.removeLocked(jobID)
		return
	}
	s.saveLocked()
}

// removeLocked disarms and deletes a job. Caller holds s.mu.
func (s *Service) removeLocked(id string) bool {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	if entryID, ok := s.robfigIDs[id]; ok {
		s.robfig.Remove(entryID)
		delete(s.robfigIDs, id)
	}
	for i := range s.store.Jobs {
		if s.store.Jobs[i].ID == id {
			s.store.Jobs = append(s.store.Jobs[:i], s.store.Jobs[i+1:]...)
			s.saveLocked()
			return true
		}
	}
	return false
}

func (s *Service) loadLocked() error {
	data, err := os.ReadFile(s.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = store{Version: 1}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.store)
}

func (s *Service) saveLocked() {
	if s.store.Version == 0 {
		s.store.Version = 1
	}
	if err := os.MkdirAll(filepath.Dir(s.storePath), 0o755); err != nil {
		slog.Warn("cron: mkdir failed", "err", err)
		return
	}
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		slog.Warn("cron: marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(s.storePath, data, 0o600); err != nil {
		slog.Warn("cron: write failed", "err", err)
	}
}

func newJobID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
