package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func openTestService(t *testing.T, path string, opts Options) *Service {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := NewService(ctx, db, opts)
	require.NoError(t, err)
	return svc
}

func newTestService(t *testing.T) (*Service, *FakeClock) {
	t.Helper()
	fc := NewFakeClock(day(2026, 3, 10))
	return openTestService(t, testDBPath(t), Options{Clock: fc}), fc
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr ValidationError
	require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func TestNewServiceDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	p := svc.Player()
	assert.Equal(t, DefaultPlayerName, p.Name)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Len(t, p.Stats, len(StatKeys))
	for _, k := range StatKeys {
		assert.Equal(t, 0, p.Stats[string(k)], k)
	}

	tasks := svc.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "default-1", tasks[0].ID)
	assert.Len(t, svc.Challenges(), len(DefaultPool()))
	assert.Equal(t, "2026-03-10", svc.Snapshot().LastDate)
}

func TestDefaultNameOption(t *testing.T) {
	svc := openTestService(t, testDBPath(t), Options{Clock: NewFakeClock(day(2026, 3, 10)), DefaultName: "Ada"})
	assert.Equal(t, "Ada", svc.Player().Name)
}

func TestCompleteTaskAwardsCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	task, err := svc.CreateTask(ctx, CreateTaskInput{Text: "  Meditate  ", Category: StatMentalHealth})
	require.NoError(t, err)
	assert.Equal(t, "Meditate", task.Text)
	assert.Equal(t, 20, task.XP)
	assert.Equal(t, string(TimeFrameToday), task.TimeFrame)

	res, err := svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 20, res.XPAwarded)
	assert.Equal(t, StatMentalHealth, res.Stat)

	p := svc.Player()
	assert.Equal(t, 20, p.XP)
	assert.Equal(t, 20, p.Stats[string(StatMentalHealth)])
	for _, got := range svc.Tasks() {
		assert.NotEqual(t, task.ID, got.ID)
	}

	again, err := svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Equal(t, 20, svc.Player().XP)
}

func TestCompleteTaskQueuesReward(t *testing.T) {
	ctx := context.Background()
	fc := NewFakeClock(day(2026, 3, 10))
	n := NewNotifier(fc, 4)
	t.Cleanup(n.Close)
	svc := openTestService(t, testDBPath(t), Options{Clock: fc, Notifier: n})

	task, err := svc.CreateTask(ctx, CreateTaskInput{Text: "Stretch", Category: StatHealth})
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n.PendingCount())

	fc.Advance(DefaultLevelUpDelay - time.Millisecond)
	assert.Empty(t, n.Events())
	fc.Advance(time.Millisecond)
	ev := <-n.Events()
	assert.Equal(t, Event{Kind: EventReward, XP: 20, Stat: StatHealth, Source: SourceTask}, ev)

	_, err = svc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n.PendingCount(), "a missing task queues nothing")
}

func TestTaskRewardTiers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	want := map[TimeFrame]int{TimeFrameToday: 20, TimeFrameTomorrow: 20, TimeFrameThisWeek: 50, TimeFrameThisMonth: 100}
	for tf, xp := range want {
		task, err := svc.CreateTask(ctx, CreateTaskInput{Text: "x", TimeFrame: tf})
		require.NoError(t, err)
		assert.Equal(t, xp, task.XP, tf)
		assert.Equal(t, string(StatDiscipline), task.Category)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	before := svc.Tasks()

	_, err := svc.CreateTask(ctx, CreateTaskInput{Text: "   "})
	requireValidation(t, err, "text")
	_, err = svc.CreateTask(ctx, CreateTaskInput{Text: "x", TimeFrame: "someday"})
	requireValidation(t, err, "timeFrame")
	_, err = svc.CreateTask(ctx, CreateTaskInput{Text: "x", Category: "luck"})
	requireValidation(t, err, "category")

	assert.Equal(t, before, svc.Tasks())
}

func TestEditDeleteAndNotes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	ok, err := svc.EditTask(ctx, "default-1", "No phone for two hours")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.SetTaskNotes(ctx, "default-1", "leave it in the kitchen")
	require.NoError(t, err)
	assert.True(t, ok)

	task := svc.Tasks()[0]
	assert.Equal(t, "No phone for two hours", task.Text)
	assert.Equal(t, "leave it in the kitchen", task.Notes)

	_, err = svc.EditTask(ctx, "default-1", "")
	requireValidation(t, err, "text")

	ok, err = svc.DeleteTask(ctx, "default-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, svc.Tasks(), 2)
	assert.Equal(t, 0, svc.Player().XP)

	ok, err = svc.DeleteTask(ctx, "default-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubtasks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddSubtask(ctx, "default-1", "step")
	requireValidation(t, err, "timeFrame")

	week, err := svc.CreateTask(ctx, CreateTaskInput{Text: "Read a book", TimeFrame: TimeFrameThisWeek, Category: StatIntelligence})
	require.NoError(t, err)
	sub, err := svc.AddSubtask(ctx, week.ID, "Chapter 1")
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)

	missing, err := svc.AddSubtask(ctx, "nope", "x")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	res, err := svc.ToggleSubtask(ctx, week.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, SubtaskXP, res.XPAwarded)
	assert.Equal(t, 10, svc.Player().Stats[string(StatIntelligence)])

	res, err = svc.ToggleSubtask(ctx, week.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 0, res.XPAwarded)
	assert.Equal(t, 10, svc.Player().XP)

	res, err = svc.ToggleSubtask(ctx, week.ID, "nope")
	require.NoError(t, err)
	assert.False(t, res.Applied)

	ok, err := svc.DeleteSubtask(ctx, week.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.DeleteSubtask(ctx, week.ID, sub.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHabitToggleIsSymmetric(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t)

	h, err := svc.CreateHabit(ctx, "Run", StatHealth)
	require.NoError(t, err)
	today := DateKey(fc.Now())

	res, err := svc.ToggleHabitDate(ctx, h.ID, today)
	require.NoError(t, err)
	assert.Equal(t, HabitToggleXP, res.XPAwarded)
	assert.Equal(t, 15, svc.Player().Stats[string(StatHealth)])
	assert.True(t, svc.Habits()[0].History[today])

	res, err = svc.ToggleHabitDate(ctx, h.ID, today)
	require.NoError(t, err)
	assert.Equal(t, -HabitToggleXP, res.XPAwarded)
	p := svc.Player()
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 0, p.Stats[string(StatHealth)])
	assert.Empty(t, svc.Habits()[0].History)

	_, err = svc.ToggleHabitDate(ctx, h.ID, "yesterday")
	requireValidation(t, err, "date")

	res, err = svc.ToggleHabitDate(ctx, "nope", today)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	ok, err := svc.DeleteHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, svc.Habits())
}

func TestCreateHabitDefaultsToDiscipline(t *testing.T) {
	svc, _ := newTestService(t)
	h, err := svc.CreateHabit(context.Background(), "Journal", "")
	require.NoError(t, err)
	assert.Equal(t, string(StatDiscipline), h.Attribute)

	_, err = svc.CreateHabit(context.Background(), "x", "luck")
	requireValidation(t, err, "attribute")
}

func TestPoorDecisionCanLevelDown(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddXP(ctx, 110)
	require.NoError(t, err)
	require.Equal(t, 2, svc.Player().Level)

	res, err := svc.PoorDecision(ctx, StatStrength)
	require.NoError(t, err)
	assert.True(t, res.Change.LevelDown())

	p := svc.Player()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 10, p.XP)
	assert.Equal(t, -100, p.Stats[string(StatStrength)])

	_, err = svc.ApplyStat(ctx, "luck", 5)
	requireValidation(t, err, "stat")
}

func TestLevelUpIsAnnounced(t *testing.T) {
	ctx := context.Background()
	fc := NewFakeClock(day(2026, 3, 10))
	n := NewNotifier(fc, 4)
	t.Cleanup(n.Close)
	svc := openTestService(t, testDBPath(t), Options{Clock: fc, Notifier: n})

	res, err := svc.AddXP(ctx, 120)
	require.NoError(t, err)
	require.True(t, res.Change.LevelUp())
	assert.Equal(t, 1, n.PendingCount())

	fc.Advance(DefaultLevelUpDelay - time.Millisecond)
	assert.Empty(t, n.Events())

	fc.Advance(time.Millisecond)
	ev := <-n.Events()
	assert.Equal(t, EventLevelUp, ev.Kind)
	assert.Equal(t, 2, ev.Level)
	assert.Equal(t, 20, ev.XP)

	_, err = svc.AddXP(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, n.PendingCount())
}

func TestRename(t *testing.T) {
	svc, _ := newTestService(t)
	p, err := svc.Rename(context.Background(), " Ada ")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	_, err = svc.Rename(context.Background(), "")
	requireValidation(t, err, "name")
	assert.Equal(t, "Ada", svc.Player().Name)
}

func TestChallengeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t)

	ok, err := svc.StartChallenge(ctx, "run_3km")
	require.NoError(t, err)
	assert.True(t, ok)
	c := svc.Challenges()[0]
	require.NotNil(t, c.StartedAt)
	assert.True(t, c.StartedAt.Equal(fc.Now()))

	fc.Advance(time.Hour)
	ok, err = svc.StartChallenge(ctx, "run_3km")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, svc.Challenges()[0].StartedAt.Equal(fc.Now()))

	res, err := svc.CompleteChallenge(ctx, "run_3km")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 30, res.XPAwarded)
	assert.Equal(t, 30, svc.Player().Stats[string(StatHealth)])

	again, err := svc.CompleteChallenge(ctx, "run_3km")
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Equal(t, 30, svc.Player().XP)

	ok, err = svc.StartChallenge(ctx, "run_3km")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.StartChallenge(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomChallenges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	c, err := svc.AddChallenge(ctx, AddChallengeInput{Text: "Cold shower", Duration: DurationWeekly})
	require.NoError(t, err)
	assert.Contains(t, c.ID, CustomChallengePrefix)
	assert.True(t, c.IsCustom)
	assert.Equal(t, 100, c.XP)
	assert.Equal(t, string(StatDiscipline), c.Category)

	_, err = svc.AddChallenge(ctx, AddChallengeInput{Text: "x", XP: -5})
	requireValidation(t, err, "xp")
	_, err = svc.AddChallenge(ctx, AddChallengeInput{Text: "x", Duration: "yearly"})
	requireValidation(t, err, "duration")

	_, err = svc.DeleteChallenge(ctx, "run_3km")
	requireValidation(t, err, "id")

	ok, err := svc.DeleteChallenge(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, svc.Challenges(), len(DefaultPool()))
}

func TestFeaturedChallengesCarryProgress(t *testing.T) {
	ctx := context.Background()
	svc, fc := newTestService(t)

	picks := svc.FeaturedChallenges()
	require.Len(t, picks, WeeklyPicks)
	assert.Equal(t, SelectWeekly(DefaultPool(), WeekKey(fc.Now()))[0].ID, picks[0].ID)

	ok, err := svc.StartChallenge(ctx, picks[0].ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, svc.FeaturedChallenges()[0].Started)
}

func TestStatePersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	fc := NewFakeClock(day(2026, 3, 10))
	path := testDBPath(t)

	svc := openTestService(t, path, Options{Clock: fc})
	task, err := svc.CreateTask(ctx, CreateTaskInput{Text: "Stretch", Category: StatHealth})
	require.NoError(t, err)
	h, err := svc.CreateHabit(ctx, "Floss", StatHealth)
	require.NoError(t, err)
	_, err = svc.ToggleHabitDate(ctx, h.ID, "2026-03-10")
	require.NoError(t, err)
	_, err = svc.StartChallenge(ctx, "drink_water")
	require.NoError(t, err)
	_, err = svc.SetLearned(ctx, "2026-03-10", "Tea helps")
	require.NoError(t, err)

	next := openTestService(t, path, Options{Clock: fc})
	assert.Equal(t, svc.Tasks(), next.Tasks())
	assert.Equal(t, task.ID, next.Tasks()[3].ID)
	assert.Equal(t, svc.Player(), next.Player())
	assert.Equal(t, 15, next.Player().XP)
	assert.True(t, next.Habits()[0].History["2026-03-10"])

	water := next.Challenges()[challengeIndex(next.Challenges(), "drink_water")]
	require.NotNil(t, water.StartedAt)
	assert.True(t, water.Started)
	assert.True(t, water.StartedAt.Equal(fc.Now()))

	e, err := next.JournalEntry(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Tea helps", e.Learned)
}

func TestEmptyTodoListSurvivesReload(t *testing.T) {
	ctx := context.Background()
	fc := NewFakeClock(day(2026, 3, 10))
	path := testDBPath(t)

	svc := openTestService(t, path, Options{Clock: fc})
	for _, task := range svc.Tasks() {
		_, err := svc.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
	}

	next := openTestService(t, path, Options{Clock: fc})
	assert.Empty(t, next.Tasks())
}

func TestSnapshotIsACopy(t *testing.T) {
	svc, _ := newTestService(t)
	snap := svc.Snapshot()
	snap.User.Stats["focus"] = 999
	snap.Todos[0].Text = "changed"
	assert.Equal(t, 0, svc.Player().Stats["focus"])
	assert.NotEqual(t, "changed", svc.Tasks()[0].Text)
}

func TestAchievements(t *testing.T) {
	st := storage.State{
		User:   storage.Player{Level: 5, Stats: map[string]int{"focus": 500}},
		Habits: []storage.Habit{{ID: "h", History: history("2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07")}},
	}
	earned := map[string]bool{}
	checker := NewAchievementChecker(st)
	for _, a := range checker.GetAchievements() {
		earned[a.ID] = a.Earned
	}
	for _, id := range []string{"getting_started", "on_the_path", "deep_work", "habit_former", "week_streak"} {
		assert.True(t, earned[id], id)
	}
	for _, id := range []string{"seasoned", "month_streak", "first_challenge", "journaler"} {
		assert.False(t, earned[id], id)
	}
	assert.Equal(t, 5, checker.CountEarned())
}
