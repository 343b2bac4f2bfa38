package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sicmundus/tracker/internal/client/client"
	"github.com/sicmundus/tracker/internal/client/models"
	"github.com/sicmundus/tracker/internal/logging"
)

// TaskRefresher reloads the task list after the timer changed task totals.
type TaskRefresher interface {
	FetchTasks(ctx context.Context)
}

type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
)

func (s TimerState) String() string {
	if s == TimerRunning {
		return "running"
	}
	return "idle"
}

const tickInterval = time.Second

// TimerController tracks the server's running timer and counts elapsed
// seconds locally between server answers. The local count never talks to
// the server.
type TimerController struct {
	client client.Client
	tasks  TaskRefresher
	clock  clockwork.Clock
	logger logging.Logger

	mu      sync.Mutex
	active  *models.ActiveTimer
	elapsed int64
	gen     uint64
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewTimerController(c client.Client, tasks TaskRefresher, clock clockwork.Clock, logger logging.Logger) *TimerController {
	return &TimerController{client: c, tasks: tasks, clock: clock, logger: logger}
}

// FetchActive adopts the server's view of the timer. A failed call leaves
// the controller idle.
func (t *TimerController) FetchActive(ctx context.Context) {
	resp, err := t.client.ActiveTimer(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.logger.Warn(ctx, "active timer fetch failed", "err", err)
		t.idleLocked()
		return
	}
	if !resp.Active || resp.Timer == nil {
		t.idleLocked()
		return
	}
	timer := *resp.Timer
	t.active = &timer
	t.elapsed = timer.ElapsedSeconds
	t.armLocked()
}

// Start starts the timer on a task. Whether another timer was running is
// up to the server.
func (t *TimerController) Start(ctx context.Context, taskID, notes string) (models.ActiveTimer, error) {
	timer, err := t.client.StartTimer(ctx, taskID, models.StartTimerRequest{Notes: notes})
	if err != nil {
		t.logger.Warn(ctx, "start timer failed", "task_id", taskID, "err", err)
		return models.ActiveTimer{}, fmt.Errorf("start timer: %w", err)
	}

	t.mu.Lock()
	active := *timer
	t.active = &active
	t.elapsed = 0
	t.armLocked()
	t.mu.Unlock()

	t.tasks.FetchTasks(ctx)
	return *timer, nil
}

func (t *TimerController) Stop(ctx context.Context) (models.StopSummary, error) {
	summary, err := t.client.StopTimer(ctx)
	if err != nil {
		t.logger.Warn(ctx, "stop timer failed", "err", err)
		return models.StopSummary{}, fmt.Errorf("stop timer: %w", err)
	}

	t.mu.Lock()
	t.idleLocked()
	t.mu.Unlock()

	t.tasks.FetchTasks(ctx)
	return *summary, nil
}

// Reset goes idle without asking the server.
func (t *TimerController) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.idleLocked()
}

// Close stops the local clock and waits for it to exit.
func (t *TimerController) Close() {
	t.Reset()
	t.wg.Wait()
}

func (t *TimerController) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return TimerRunning
	}
	return TimerIdle
}

func (t *TimerController) Active() *models.ActiveTimer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	a := *t.active
	return &a
}

func (t *TimerController) ElapsedSeconds() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *TimerController) HasActive() bool {
	return t.State() == TimerRunning
}

// ActiveTaskID returns "" when idle.
func (t *TimerController) ActiveTaskID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return ""
	}
	return t.active.TaskID
}

func (t *TimerController) idleLocked() {
	t.active = nil
	t.elapsed = 0
	t.disarmLocked()
}

func (t *TimerController) armLocked() {
	t.disarmLocked()

	t.gen++
	gen := t.gen
	stop := make(chan struct{})
	t.stop = stop
	ticker := t.clock.NewTicker(tickInterval)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				t.tick(gen)
			}
		}
	}()
}

func (t *TimerController) disarmLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.gen++
}

// tick counts one second if gen is still the armed loop.
func (t *TimerController) tick(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || t.active == nil {
		return
	}
	t.elapsed++
}
