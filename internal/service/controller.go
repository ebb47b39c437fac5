package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
	"smartchef/internal/scheduler"
	"smartchef/internal/voice"
)

// LiveState is the controller's snapshot for the console: the projected
// burner view plus clock position.
type LiveState struct {
	SessionID        string                 `json:"session_id"`
	Status           string                 `json:"status"`
	Paused           bool                   `json:"paused"`
	ElapsedMinutes   int                    `json:"elapsed_minutes"`
	RemainingMinutes int                    `json:"remaining_minutes"`
	CurrentStepIndex int                    `json:"current_step_index"`
	Burners          models.DualBurnerState `json:"burners"`
}

// Controller drives one cooking session through its lifecycle. The HTTP
// layer and the clock goroutine both enter it, so every public method takes
// the mutex; no transition is ever applied concurrently.
//
// All speech is best-effort: a failed or missing speech capability never
// blocks a transition. Durable writes happen before in-memory mutation, so
// a failed write leaves no torn state; sessions that only exist in staging
// are re-staged instead.
type Controller struct {
	mu sync.Mutex

	session  *models.CookingSession
	sessions repository.SessionRepo
	staging  repository.Staging
	progress repository.ProgressRepo
	speaker  voice.Speaker
	log      *logger.Logger

	elapsed int // simulated minutes since start
	paused  bool

	activeProgressID string
	stepStartedAt    time.Time

	baseCtx   context.Context // parent of the clock goroutine's context
	clockTick time.Duration   // wall time per simulated minute
	stopClock context.CancelFunc
}

// NewController wraps a loaded session. If the session was already cooking
// (console reopened mid-run), the clock position is recomputed from
// started_at; a pause before the reload is not recoverable, so the session
// resumes as if it had never paused.
func NewController(session *models.CookingSession, repos *repository.Repository, speaker voice.Speaker, log *logger.Logger, baseCtx context.Context, tick time.Duration) *Controller {
	if tick <= 0 {
		tick = time.Minute
	}
	c := &Controller{
		session:   session,
		sessions:  repos.Sessions,
		staging:   repos.Staging,
		progress:  repos.Progress,
		speaker:   speaker,
		log:       log,
		baseCtx:   baseCtx,
		clockTick: tick,
	}
	if session.Status == models.StatusCooking && session.StartedAt != nil {
		c.elapsed = clampElapsed(int(time.Since(*session.StartedAt).Minutes()), session.TotalDuration)
	}
	return c
}

func clampElapsed(elapsed, total int) int {
	if elapsed < 0 {
		return 0
	}
	if elapsed > total {
		return total
	}
	return elapsed
}

// Start performs the pending -> cooking transition. Calling it on a session
// that is already cooking or completed is a no-op, not an error: a live
// kitchen session must survive a double-tap.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status != models.StatusPending {
		return nil
	}

	now := time.Now().UTC()
	estimatedEnd := now.Add(time.Duration(c.session.TotalDuration) * time.Minute)
	if err := c.persistCooking(ctx, now, estimatedEnd); err != nil {
		return err
	}

	c.session.Status = models.StatusCooking
	c.session.StartedAt = &now
	c.session.EstimatedEndTime = &estimatedEnd
	c.elapsed = 0
	c.paused = false
	c.ensureClockLocked()

	c.speak(ctx, voice.PromptCookingStarted)
	c.openProgressRecord(ctx, voice.PromptCookingStarted)
	return nil
}

// Pause stops the clock without touching the persisted status; pausing is a
// client-side clock concern, not a durable lifecycle transition.
func (c *Controller) Pause(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status != models.StatusCooking || c.paused {
		return
	}
	c.paused = true
	c.speak(ctx, voice.PromptCookingPaused)
}

// Resume restarts the clock after a pause.
func (c *Controller) Resume(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status != models.StatusCooking || !c.paused {
		return
	}
	c.paused = false
	c.speak(ctx, voice.PromptCookingResumed)
}

// NextStep advances the progress cursor and announces the new current task.
// Returns the spoken prompt, empty when the cursor ran past the task list.
func (c *Controller) NextStep(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.session.CurrentStepIndex + 1
	if err := c.persistCursor(ctx, next); err != nil {
		return "", err
	}

	c.closeProgressRecord(ctx)
	c.session.CurrentStepIndex = next

	task := c.currentTask()
	if task == nil {
		return "", nil
	}
	prompt := voice.StepPrompt(*task)
	c.speak(ctx, prompt)
	c.openProgressRecord(ctx, prompt)
	return prompt, nil
}

// Repeat re-announces the current task without advancing.
func (c *Controller) Repeat(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	task := c.currentTask()
	if task == nil {
		return ""
	}
	prompt := voice.StepPrompt(*task)
	c.speak(ctx, prompt)
	return prompt
}

// Query answers a voice question. For time it speaks the remaining minutes;
// for temperature it surfaces the current task's declared temperature.
func (c *Controller) Query(ctx context.Context, target string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var prompt string
	switch target {
	case voice.TargetTime:
		prompt = voice.RemainingPrompt(c.session.TotalDuration - c.elapsed)
	case voice.TargetTemperature:
		task := c.currentTask()
		if task == nil {
			prompt = voice.PromptNoTemperature
		} else {
			prompt = voice.TemperaturePrompt(*task)
		}
	default:
		return ""
	}
	c.speak(ctx, prompt)
	return prompt
}

// Complete performs the cooking -> completed transition and stops the
// clock. Completing a session that never started, or one already completed,
// is a no-op. Irreversible: a new round of cooking needs a new session.
func (c *Controller) Complete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status != models.StatusCooking {
		return nil
	}

	now := time.Now().UTC()
	if err := c.persistCompleted(ctx, now); err != nil {
		return err
	}

	c.session.Status = models.StatusCompleted
	c.session.ActualEndTime = &now
	c.closeProgressRecord(ctx)
	c.stopClockLocked()

	c.speak(ctx, voice.PromptAllComplete)
	return nil
}

// HandleCommand dispatches an interpreted voice command. A nil command is
// ignored. Returns what was spoken in response, if anything.
func (c *Controller) HandleCommand(ctx context.Context, cmd *voice.Command) (string, error) {
	if cmd == nil {
		return "", nil
	}
	switch cmd.Type {
	case voice.CommandStart:
		return "", c.Start(ctx)
	case voice.CommandPause:
		c.Pause(ctx)
		return "", nil
	case voice.CommandNext:
		return c.NextStep(ctx)
	case voice.CommandRepeat:
		return c.Repeat(ctx), nil
	case voice.CommandQuery:
		return c.Query(ctx, cmd.Target), nil
	default:
		return "", nil
	}
}

// Tick advances the simulated clock by one minute. No-op unless the session
// is cooking and the clock is running.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Status != models.StatusCooking || c.paused {
		return
	}
	c.elapsed++
	c.refreshDishStatuses(ctx)
}

// State returns the live console snapshot for the current clock position.
func (c *Controller) State() LiveState {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.session.TotalDuration - c.elapsed
	if remaining < 0 {
		remaining = 0
	}
	return LiveState{
		SessionID:        c.session.ID,
		Status:           c.session.Status,
		Paused:           c.paused,
		ElapsedMinutes:   c.elapsed,
		RemainingMinutes: remaining,
		CurrentStepIndex: c.session.CurrentStepIndex,
		Burners:          scheduler.ProjectBurners(c.session.ScheduledDishes, c.elapsed),
	}
}

// Session returns a copy of the controller's session.
func (c *Controller) Session() models.CookingSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.session
}

// runClock drives Tick until the context is cancelled. tick is the wall
// time per simulated minute (a real console runs at time.Minute; tests and
// demos run faster).
func (c *Controller) runClock(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Tick(ctx)
		}
	}
}

// ensureClockLocked starts the clock goroutine if it is not yet running.
// Callers hold the mutex.
func (c *Controller) ensureClockLocked() {
	if c.stopClock != nil {
		return
	}
	base := c.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	c.stopClock = cancel
	go c.runClock(ctx, c.clockTick)
}

// EnsureClock restarts the clock for a session loaded mid-run.
func (c *Controller) EnsureClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Status == models.StatusCooking {
		c.ensureClockLocked()
	}
}

// StopClock cancels the pending tick; used when the console detaches so a
// discarded controller never mutates state from a leaked timer.
func (c *Controller) StopClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopClockLocked()
}

func (c *Controller) stopClockLocked() {
	if c.stopClock != nil {
		c.stopClock()
		c.stopClock = nil
	}
}

// refreshDishStatuses rolls dish statuses forward to match the clock.
// Persisted best-effort; the statuses are re-derivable from the schedule.
func (c *Controller) refreshDishStatuses(ctx context.Context) {
	changed := false
	for i := range c.session.ScheduledDishes {
		d := &c.session.ScheduledDishes[i]
		want := d.Status
		switch {
		case d.EndTime() <= c.elapsed:
			want = models.DishCompleted
		case d.Occupies(c.elapsed):
			want = models.DishCooking
		}
		if want != d.Status {
			d.Status = want
			changed = true
		}
	}
	if !changed {
		return
	}
	if err := c.sessions.SaveDishes(ctx, c.session.ID, c.session.ScheduledDishes); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.staging.Put(*c.session)
			return
		}
		c.log.Warnw("dish_status_save_failed", "session", c.session.ID, "err", err)
	}
}

// currentTask resolves the progress cursor against the first dish that is
// still pending or cooking, mirroring the console's step navigation.
func (c *Controller) currentTask() *models.CookingTask {
	for _, d := range c.session.ScheduledDishes {
		if d.Status == models.DishCompleted {
			continue
		}
		idx := c.session.CurrentStepIndex
		if idx >= 0 && idx < len(d.Tasks) {
			task := d.Tasks[idx]
			return &task
		}
		return nil
	}
	return nil
}

// speak emits a prompt through the speech capability, best-effort. A new
// utterance cancels any in-flight one.
func (c *Controller) speak(ctx context.Context, text string) {
	if !c.speaker.Enabled() || text == "" {
		return
	}
	c.speaker.Cancel()
	if err := c.speaker.Speak(ctx, text); err != nil {
		c.log.Warnw("speech_failed", "session", c.session.ID, "err", err)
	}
}

// openProgressRecord starts an audit record for the step the session is on.
// The log is advisory, so failures are logged and swallowed.
func (c *Controller) openProgressRecord(ctx context.Context, prompt string) {
	task := c.currentTask()
	equipment := models.BurnerShared
	var temperature float64
	if task != nil {
		if task.Equipment != "" {
			equipment = task.Equipment
		}
		temperature = task.Temperature
	}

	now := time.Now().UTC()
	record := models.CookingProgress{
		ID:          uuid.NewString(),
		SessionID:   c.session.ID,
		StepIndex:   c.session.CurrentStepIndex,
		Equipment:   equipment,
		Status:      models.ProgressActive,
		StartedAt:   now,
		Temperature: temperature,
	}
	if prompt != "" {
		record.VoicePrompts = []string{prompt}
	}

	if err := c.progress.Append(ctx, record); err != nil {
		c.log.Warnw("progress_append_failed", "session", c.session.ID, "err", err)
		return
	}
	c.activeProgressID = record.ID
	c.stepStartedAt = now
}

// closeProgressRecord completes the open record with the observed duration.
func (c *Controller) closeProgressRecord(ctx context.Context) {
	if c.activeProgressID == "" {
		return
	}
	now := time.Now().UTC()
	observed := int(now.Sub(c.stepStartedAt).Seconds())
	if err := c.progress.Complete(ctx, c.activeProgressID, now, observed); err != nil {
		c.log.Warnw("progress_complete_failed", "session", c.session.ID, "err", err)
	}
	c.activeProgressID = ""
}

// persistCooking/persistCompleted/persistCursor write the transition before
// memory mutates. A session the durable store has never seen stays valid by
// updating its staged copy instead.

func (c *Controller) persistCooking(ctx context.Context, startedAt, estimatedEnd time.Time) error {
	err := c.sessions.MarkCooking(ctx, c.session.ID, startedAt, estimatedEnd)
	if errors.Is(err, repository.ErrSessionNotFound) {
		staged := *c.session
		staged.Status = models.StatusCooking
		staged.StartedAt = &startedAt
		staged.EstimatedEndTime = &estimatedEnd
		c.staging.Put(staged)
		return nil
	}
	return err
}

func (c *Controller) persistCompleted(ctx context.Context, endedAt time.Time) error {
	err := c.sessions.MarkCompleted(ctx, c.session.ID, endedAt)
	if errors.Is(err, repository.ErrSessionNotFound) {
		staged := *c.session
		staged.Status = models.StatusCompleted
		staged.ActualEndTime = &endedAt
		c.staging.Put(staged)
		return nil
	}
	return err
}

func (c *Controller) persistCursor(ctx context.Context, stepIndex int) error {
	err := c.sessions.SaveCursor(ctx, c.session.ID, stepIndex)
	if errors.Is(err, repository.ErrSessionNotFound) {
		staged := *c.session
		staged.CurrentStepIndex = stepIndex
		c.staging.Put(staged)
		return nil
	}
	return err
}
