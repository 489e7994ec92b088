package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGetUnknownFallsBack(t *testing.T) {
	def := Catalog.Get("Necromancer")
	assert.Equal(t, ClassTechnomancer, def.Name)
	assert.False(t, Catalog.Has("Necromancer"))
	assert.True(t, Catalog.Has(ClassSystemAdmin))
}

func TestCatalogNamesOrder(t *testing.T) {
	assert.Equal(t, []ClassName{
		ClassTechnomancer, ClassCodeWarrior, ClassDataWizard,
		ClassCyberKnight, ClassDigitalAssassin, ClassSystemAdmin,
	}, Catalog.Names())
}

func TestCatalogGetReturnsCopy(t *testing.T) {
	def := Catalog.Get(ClassTechnomancer)
	def.BaseStats[StatStrength] = 99
	def.CategoryBonus["Programming"] = 9

	again := Catalog.Get(ClassTechnomancer)
	assert.Equal(t, 8, again.BaseStats[StatStrength])
	assert.Equal(t, 1.5, again.CategoryBonus["Programming"])
}

func TestCatalogBonusFor(t *testing.T) {
	assert.Equal(t, 1.5, Catalog.BonusFor(ClassDigitalAssassin, "Gaming"))
	assert.Equal(t, 1.0, Catalog.BonusFor(ClassDigitalAssassin, "Learning"))
	assert.Equal(t, 1.5, Catalog.BonusFor("nope", "Programming"))
}

func TestParseClassName(t *testing.T) {
	n, ok := Catalog.ParseClassName("code-warrior")
	assert.True(t, ok)
	assert.Equal(t, ClassCodeWarrior, n)

	n, ok = Catalog.ParseClassName("bard")
	assert.False(t, ok)
	assert.Equal(t, DefaultClass, n)
}

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 100},
		{1, 100},
		{2, 115},
		{3, 132},
		{4, 152},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPToNextLevel(tt.level), "level %d", tt.level)
	}

	prev := XPToNextLevel(1)
	for l := 2; l <= 200; l++ {
		cur := XPToNextLevel(l)
		assert.Greater(t, cur, prev, "level %d", l)
		prev = cur
	}
	assert.Equal(t, math.MaxInt, XPToNextLevel(1000))
}

func TestXPReward(t *testing.T) {
	tests := []struct {
		name  string
		diff  Difficulty
		hours float64
		cat   Category
		class ClassName
		want  int
	}{
		{"hard programming technomancer", DifficultyHard, 4, "Programming", ClassTechnomancer, 180},
		{"easy no time no bonus", DifficultyEasy, 0, "general", ClassTechnomancer, 25},
		{"short task floors multiplier", DifficultyDaunting, 1, "Gaming", ClassCodeWarrior, 200},
		{"unknown difficulty earns medium", Difficulty("legendary"), 0, "general", ClassTechnomancer, 50},
		{"unknown class uses default bonuses", DifficultyMedium, 0, "Programming", "Bard", 75},
		{"long task", DifficultyMedium, 10, "Learning", ClassDataWizard, 225},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPReward(tt.diff, tt.hours, tt.cat, tt.class))
		})
	}
}

func TestXPRewardMonotonicInHours(t *testing.T) {
	prev := 0
	for h := 0.0; h <= 24; h += 0.25 {
		got := XPReward(DifficultyHard, h, "Work", ClassSystemAdmin)
		assert.GreaterOrEqual(t, got, prev, "hours %.2f", h)
		prev = got
	}
}

func TestTimeMultiplier(t *testing.T) {
	assert.Equal(t, MinTimeMultiplier, TimeMultiplier(0))
	assert.Equal(t, MinTimeMultiplier, TimeMultiplier(2))
	assert.InDelta(t, 3.0, TimeMultiplier(10), 1e-9)
}

func TestNewCharacter(t *testing.T) {
	c, err := NewCharacter("  Jin-Woo ", ClassDataWizard)
	require.NoError(t, err)
	assert.Equal(t, "Jin-Woo", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 0, c.CurrentXP)
	assert.Equal(t, 100, c.XPToNextLevel)
	assert.Equal(t, Catalog.Get(ClassDataWizard).BaseStats, c.Stats)

	c.Stats[StatFocus] = 1
	assert.Equal(t, 13, Catalog.Get(ClassDataWizard).BaseStats[StatFocus])

	fallback, err := NewCharacter("x", "Bard")
	require.NoError(t, err)
	assert.Equal(t, ClassTechnomancer, fallback.Class)

	_, err = NewCharacter("   ", ClassDataWizard)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestApplyXPMultipleLevels(t *testing.T) {
	c, err := NewCharacter("Sung", ClassTechnomancer)
	require.NoError(t, err)

	events, err := c.ApplyXP(250)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Level)
	assert.Equal(t, 3, events[1].Level)
	assert.Equal(t, Stats{StatIntelligence: 3, StatFocus: 2, StatCreativity: 1}, events[0].StatDeltas)

	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 35, c.CurrentXP)
	assert.Equal(t, 132, c.XPToNextLevel)
	assert.Equal(t, 250, c.TotalXP)
	assert.Equal(t, 22, c.Stats[StatIntelligence])
	assert.Equal(t, 18, c.Stats[StatFocus])
	assert.Equal(t, 14, c.Stats[StatCreativity])
	assert.Equal(t, 8, c.Stats[StatStrength])
}

func TestApplyXPExactThreshold(t *testing.T) {
	c, err := NewCharacter("Sung", ClassCyberKnight)
	require.NoError(t, err)

	events, err := c.ApplyXP(99)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
	assert.Equal(t, 1, c.Level)

	events, err = c.ApplyXP(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 0, c.CurrentXP)
	assert.Equal(t, 115, c.XPToNextLevel)
}

func TestApplyXPZeroAndNegative(t *testing.T) {
	c, err := NewCharacter("Sung", ClassTechnomancer)
	require.NoError(t, err)
	before := c.Snapshot()

	events, err := c.ApplyXP(0)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, before, c.Snapshot())

	_, err = c.ApplyXP(-5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, before, c.Snapshot())
}

func TestApplyXPRejectsOverflow(t *testing.T) {
	c, err := NewCharacter("Sung", ClassTechnomancer)
	require.NoError(t, err)
	_, err = c.ApplyXP(50)
	require.NoError(t, err)
	before := c.Snapshot()

	_, err = c.ApplyXP(math.MaxInt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, before, c.Snapshot())
}

func TestCompleteWithHugeHoursLeavesStateIntact(t *testing.T) {
	c, _ := NewCharacter("Sung", ClassTechnomancer)
	_, err := c.ApplyXP(50)
	require.NoError(t, err)
	before := c.Snapshot()

	task, err := NewTask(NewTaskInput{Title: "forever", Difficulty: DifficultyHard})
	require.NoError(t, err)
	require.NoError(t, task.LogHours(1e300))

	_, err = Complete(task, c, time.Now())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, before, c.Snapshot())
	assert.GreaterOrEqual(t, c.CurrentXP, 0)
	assert.Equal(t, StatusPending, task.Status)
	assert.Zero(t, task.XPReward)
}

func TestLogHoursRejectsInfiniteTotal(t *testing.T) {
	task, _ := NewTask(NewTaskInput{Title: "t"})
	require.NoError(t, task.LogHours(1e308))

	err := task.LogHours(1e308)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 1e308, task.ActualHours)
}

func TestApplyXPSplitEqualsSingle(t *testing.T) {
	a, _ := NewCharacter("a", ClassSystemAdmin)
	b, _ := NewCharacter("b", ClassSystemAdmin)

	_, err := a.ApplyXP(700)
	require.NoError(t, err)
	for _, amt := range []int{120, 330, 250} {
		_, err := b.ApplyXP(amt)
		require.NoError(t, err)
	}
	assert.Equal(t, a.Level, b.Level)
	assert.Equal(t, a.CurrentXP, b.CurrentXP)
	assert.Equal(t, a.Stats, b.Stats)
}

func TestProgress(t *testing.T) {
	c := &Character{CurrentXP: 25, XPToNextLevel: 100}
	assert.InDelta(t, 25.0, c.Progress(), 1e-9)
	c.XPToNextLevel = 0
	assert.Equal(t, 100.0, c.Progress())
}

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask(NewTaskInput{Title: " Write tests "})
	require.NoError(t, err)
	assert.Equal(t, "Write tests", task.Title)
	assert.Equal(t, DifficultyMedium, task.Difficulty)
	assert.Equal(t, DefaultCategory, task.Category)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, DefaultPriority, task.Priority)
	assert.Zero(t, task.ActualHours)

	task, err = NewTask(NewTaskInput{Title: "x", Category: "programming"})
	require.NoError(t, err)
	assert.Equal(t, Category("Programming"), task.Category)

	_, err = NewTask(NewTaskInput{Title: ""})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewTask(NewTaskInput{Title: "x", EstimatedHours: -1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestCompleteAwardsOnce(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c, _ := NewCharacter("Sung", ClassTechnomancer)
	task, err := NewTask(NewTaskInput{Title: "Ship", Difficulty: DifficultyHard, Category: "Programming"})
	require.NoError(t, err)
	require.NoError(t, task.LogHours(4))

	events, err := Complete(task, c, now)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, 180, task.XPReward)
	require.NotNil(t, task.EndedAt)
	assert.Equal(t, now, *task.EndedAt)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 80, c.CurrentXP)

	before := c.Snapshot()
	_, err = Complete(task, c, now)
	var stateErr InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "complete", stateErr.Op)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, before, c.Snapshot())
}

func TestCompleteFailedTaskRejected(t *testing.T) {
	c, _ := NewCharacter("Sung", ClassTechnomancer)
	task, _ := NewTask(NewTaskInput{Title: "Skip"})
	require.NoError(t, task.Fail(time.Now()))

	_, err := Complete(task, c, time.Now())
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, 0, c.TotalXP)
}

func TestTaskTransitions(t *testing.T) {
	task, _ := NewTask(NewTaskInput{Title: "t"})
	now := time.Now()
	require.NoError(t, task.Start(now))
	assert.Equal(t, StatusInProgress, task.Status)
	assert.True(t, errors.Is(task.Start(now), ErrInvalidState))

	assert.True(t, errors.Is(task.LogHours(-1), ErrInvalidArgument))
	require.NoError(t, task.LogHours(1.5))
	assert.Equal(t, 1.5, task.ActualHours)

	require.NoError(t, task.Fail(now))
	assert.True(t, errors.Is(task.LogHours(1), ErrInvalidState))
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	task, _ := NewTask(NewTaskInput{Title: "t", Deadline: &past})
	assert.True(t, task.IsOverdue(now))
	require.NoError(t, task.Fail(now))
	assert.False(t, task.IsOverdue(now))
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyEasy, ParseDifficulty("1"))
	assert.Equal(t, DifficultyDaunting, ParseDifficulty(" Epic "))
	assert.Equal(t, DifficultyMedium, ParseDifficulty(""))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("whatever"))
}

func TestAchievementChecker(t *testing.T) {
	c := &Character{ID: 1, Class: ClassTechnomancer, Level: 5}
	var tasks []Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, Task{Status: StatusCompleted, Category: "Programming", Difficulty: DifficultyEasy})
	}
	tasks = append(tasks, Task{Status: StatusFailed, Difficulty: DifficultyDaunting})

	earned := map[string]bool{}
	for _, a := range NewAchievementChecker(c, tasks).Earned() {
		earned[a.Code] = true
	}
	assert.True(t, earned["level_2"])
	assert.True(t, earned["level_5"])
	assert.False(t, earned["level_10"])
	assert.True(t, earned["first_task"])
	assert.True(t, earned["productive"])
	assert.True(t, earned["specialist"])
	assert.False(t, earned["dungeon_clear"])
	assert.False(t, earned["marathon"])

	checker := NewAchievementChecker(c, tasks)
	assert.Equal(t, 11, checker.CountTotal())
	assert.Equal(t, 5, checker.CountEarned())
}

func TestRankCharacters(t *testing.T) {
	chars := []Character{
		{ID: 1, Name: "a", Level: 2, TotalXP: 150},
		{ID: 2, Name: "b", Level: 3, TotalXP: 260},
		{ID: 3, Name: "c", Level: 2, TotalXP: 180},
		{ID: 4, Name: "d", Level: 2, TotalXP: 150},
	}
	got := RankCharacters(chars)
	require.Len(t, got, 4)
	var ids []int64
	for i, s := range got {
		assert.Equal(t, i+1, s.Rank)
		ids = append(ids, s.CharacterID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
}
