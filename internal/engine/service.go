package engine

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/MehradMi/Solo-Leveling-Task-Tracker/internal/storage"
)

// Service persists characters and tasks and routes every progression change through
// the pure engine functions. Each mutating call runs in a single transaction.
type Service struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

type Option func(*Service)

// WithLogger sets the logger used for fallbacks and progression events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:  db,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// repos bundles the repositories bound to one transaction.
type repos struct {
	users        *storage.UserRepo
	characters   *storage.CharacterRepo
	tasks        *storage.TaskRepo
	sessions     *storage.SessionRepo
	achievements *storage.AchievementRepo
	leaderboard  *storage.LeaderboardRepo
}

func newRepos(db storage.DBTX) repos {
	return repos{
		users:        storage.NewUserRepo(db),
		characters:   storage.NewCharacterRepo(db),
		tasks:        storage.NewTaskRepo(db),
		sessions:     storage.NewSessionRepo(db),
		achievements: storage.NewAchievementRepo(db),
		leaderboard:  storage.NewLeaderboardRepo(db),
	}
}

func (s *Service) inTx(ctx context.Context, fn func(r repos) error) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(newRepos(tx))
	})
}

func (s *Service) characterFromRecord(rec *storage.Character) *Character {
	class := ClassName(rec.Class)
	if !Catalog.Has(class) {
		s.log.Warn("unknown character class, using default",
			"character_id", rec.ID, "class", rec.Class, "default", string(Catalog.Resolve(class)))
		class = Catalog.Resolve(class)
	}
	stats := Stats{}
	for k, v := range rec.Stats {
		if st := Stat(k); st.IsValid() {
			stats[st] = v
		}
	}
	return &Character{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Name:          rec.Name,
		Class:         class,
		Level:         rec.Level,
		CurrentXP:     rec.CurrentXP,
		TotalXP:       rec.TotalXP,
		XPToNextLevel: rec.XPToNextLevel,
		Stats:         stats,
		CreatedAt:     rec.CreatedAt,
		LastActiveAt:  rec.LastActiveAt,
	}
}

func characterRecord(c *Character) *storage.Character {
	stats := make(map[string]int, len(c.Stats))
	for k, v := range c.Stats {
		stats[string(k)] = v
	}
	return &storage.Character{
		ID:            c.ID,
		UserID:        c.UserID,
		Name:          c.Name,
		Class:         string(c.Class),
		Level:         c.Level,
		CurrentXP:     c.CurrentXP,
		TotalXP:       c.TotalXP,
		XPToNextLevel: c.XPToNextLevel,
		Stats:         stats,
		CreatedAt:     c.CreatedAt,
		LastActiveAt:  c.LastActiveAt,
	}
}

func taskFromRecord(rec *storage.Task) *Task {
	status := TaskStatus(rec.Status)
	if !status.IsValid() {
		status = StatusPending
	}
	return &Task{
		ID:             rec.ID,
		CharacterID:    rec.CharacterID,
		Title:          rec.Title,
		Description:    rec.Description,
		Difficulty:     parseStoredDifficulty(rec.Difficulty),
		Category:       Category(rec.Category),
		EstimatedHours: rec.EstimatedHours,
		ActualHours:    rec.ActualHours,
		Status:         status,
		Priority:       rec.Priority,
		XPReward:       rec.XPReward,
		CreatedAt:      rec.CreatedAt,
		StartedAt:      rec.StartedAt,
		EndedAt:        rec.EndedAt,
		Deadline:       rec.Deadline,
	}
}

func taskRecord(t *Task) *storage.Task {
	return &storage.Task{
		ID:             t.ID,
		CharacterID:    t.CharacterID,
		Title:          t.Title,
		Description:    t.Description,
		Difficulty:     string(t.Difficulty),
		Category:       string(t.Category),
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Status:         string(t.Status),
		Priority:       t.Priority,
		XPReward:       t.XPReward,
		CreatedAt:      t.CreatedAt,
		StartedAt:      t.StartedAt,
		EndedAt:        t.EndedAt,
		Deadline:       t.Deadline,
	}
}

func (s *Service) activeCharacter(ctx context.Context, r repos) (*Character, error) {
	rec, err := r.characters.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NotFoundError{Kind: "active character"}
	}
	return s.characterFromRecord(rec), nil
}

// ActiveCharacter returns the character new tasks and completions apply to.
func (s *Service) ActiveCharacter(ctx context.Context) (*Character, error) {
	return s.activeCharacter(ctx, newRepos(s.db))
}

// loadTask fetches a task owned by c.
func (s *Service) loadTask(ctx context.Context, r repos, c *Character, id int64) (*Task, error) {
	rec, err := r.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CharacterID != c.ID {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	return taskFromRecord(rec), nil
}

func (s *Service) refreshLeaderboard(ctx context.Context, r repos) ([]Standing, error) {
	recs, err := r.characters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	chars := make([]Character, 0, len(recs))
	for i := range recs {
		chars = append(chars, *s.characterFromRecord(&recs[i]))
	}
	standings := RankCharacters(chars)

	entries := make([]storage.LeaderboardEntry, 0, len(standings))
	for _, st := range standings {
		entries = append(entries, storage.LeaderboardEntry{
			CharacterID: st.CharacterID,
			Rank:        st.Rank,
			Level:       st.Level,
			XP:          st.TotalXP,
		})
	}
	if err := r.leaderboard.Replace(ctx, entries, s.now()); err != nil {
		return nil, err
	}
	return standings, nil
}

// Leaderboard re-ranks all local characters, stores the snapshot and returns it.
func (s *Service) Leaderboard(ctx context.Context) ([]Standing, error) {
	var out []Standing
	err := s.inTx(ctx, func(r repos) error {
		var err error
		out, err = s.refreshLeaderboard(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Standings returns the leaderboard as last stored, without re-ranking.
func (s *Service) Standings(ctx context.Context) ([]Standing, error) {
	entries, err := newRepos(s.db).leaderboard.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Standing, 0, len(entries))
	for _, e := range entries {
		out = append(out, Standing{
			Rank:        e.Rank,
			CharacterID: e.CharacterID,
			Name:        e.Name,
			Class:       ClassName(e.Class),
			Level:       e.Level,
			TotalXP:     e.XP,
		})
	}
	return out, nil
}

// CategoryCounts returns how many tasks the active character completed per category.
func (s *Service) CategoryCounts(ctx context.Context) (map[Category]int, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return nil, err
	}
	counts, err := r.tasks.CountCompletedByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make(map[Category]int, len(counts))
	for k, v := range counts {
		out[Category(k)] = v
	}
	return out, nil
}

// TrackedTime sums the closed time sessions of one of the active character's tasks.
func (s *Service) TrackedTime(ctx context.Context, id int64) (time.Duration, error) {
	r := newRepos(s.db)
	c, err := s.activeCharacter(ctx, r)
	if err != nil {
		return 0, err
	}
	if _, err := s.loadTask(ctx, r, c, id); err != nil {
		return 0, err
	}
	secs, err := r.sessions.TotalSeconds(ctx, id)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}
