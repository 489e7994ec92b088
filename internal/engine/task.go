package engine

import (
	"math"
	"strings"
	"time"
)

// DefaultPriority is applied when a task is created without one.
const DefaultPriority = 1

// Task is a unit of real-world work owned by one character.
type Task struct {
	ID          int64
	CharacterID int64

	Title       string
	Description string
	Difficulty  Difficulty
	Category    Category

	EstimatedHours float64
	ActualHours    float64

	Status   TaskStatus
	Priority int

	// XPReward caches the reward computed at completion; zero until then.
	XPReward int

	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	Deadline  *time.Time
}

type NewTaskInput struct {
	CharacterID    int64
	Title          string
	Description    string
	Difficulty     Difficulty
	Category       Category
	EstimatedHours float64
	Priority       int
	Deadline       *time.Time
	CreatedAt      time.Time
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", InvalidArgumentError{Field: "title", Reason: "is required"}
	}
	return t, nil
}

func validateHours(field string, h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return InvalidArgumentError{Field: field, Reason: "must be a non-negative number"}
	}
	return nil
}

// NewTask validates in and returns a pending task with defaults filled in:
// medium difficulty, the "general" category and priority 1.
func NewTask(in NewTaskInput) (*Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateHours("estimated_hours", in.EstimatedHours); err != nil {
		return nil, err
	}

	diff := in.Difficulty
	if !diff.IsValid() {
		diff = DefaultDifficulty
	}
	cat := NormalizeCategory(string(in.Category))
	prio := in.Priority
	if prio == 0 {
		prio = DefaultPriority
	}
	created := in.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	return &Task{
		CharacterID:    in.CharacterID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Difficulty:     diff,
		Category:       cat,
		EstimatedHours: in.EstimatedHours,
		Status:         StatusPending,
		Priority:       prio,
		CreatedAt:      created,
		Deadline:       in.Deadline,
	}, nil
}

// Start moves a pending task to in_progress.
func (t *Task) Start(now time.Time) error {
	if t.Status != StatusPending {
		return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "start"}
	}
	t.Status = StatusInProgress
	t.StartedAt = &now
	return nil
}

// Fail closes an open task without reward.
func (t *Task) Fail(now time.Time) error {
	if !t.Status.IsOpen() {
		return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "fail"}
	}
	t.Status = StatusFailed
	t.EndedAt = &now
	return nil
}

// LogHours adds worked time to an open task.
func (t *Task) LogHours(hours float64) error {
	if err := validateHours("hours", hours); err != nil {
		return err
	}
	if !t.Status.IsOpen() {
		return InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "log time on"}
	}
	if total := t.ActualHours + hours; math.IsInf(total, 0) {
		return InvalidArgumentError{Field: "hours", Reason: "total logged time is out of range"}
	}
	t.ActualHours += hours
	return nil
}

// IsOverdue reports whether the task is still open past its deadline.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && t.Status.IsOpen() && now.After(*t.Deadline)
}

// PreviewXP returns what completing the task right now would award a character of
// the given class.
func PreviewXP(t *Task, class ClassName) int {
	return XPReward(t.Difficulty, t.ActualHours, t.Category, class)
}

// Complete awards the task's XP to c and closes the task. XP is granted exactly once:
// completing a task that is already completed or failed returns an InvalidStateError
// and leaves both values unchanged.
func Complete(t *Task, c *Character, now time.Time) ([]LevelUpEvent, error) {
	if !t.Status.IsOpen() {
		return nil, InvalidStateError{TaskID: t.ID, Status: t.Status, Op: "complete"}
	}
	if t.CharacterID != 0 && c.ID != 0 && t.CharacterID != c.ID {
		return nil, InvalidArgumentError{Field: "character", Reason: "task belongs to another character"}
	}

	reward := PreviewXP(t, c.Class)
	events, err := c.ApplyXP(reward)
	if err != nil {
		return nil, err
	}

	t.Status = StatusCompleted
	t.EndedAt = &now
	t.XPReward = reward
	return events, nil
}
