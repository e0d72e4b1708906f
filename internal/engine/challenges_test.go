package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jaydenlee09/GameOfLife/internal/storage"
)

func TestWeekKeyUsesMonday(t *testing.T) {
	sunday := day(2026, 3, 8)
	if got := DateKey(MondayOf(sunday)); got != "2026-03-02" {
		t.Fatalf("MondayOf(Sun) = %s, want 2026-03-02", got)
	}
	if got := WeekKey(sunday); got != "Mon Mar 02 2026" {
		t.Fatalf("WeekKey = %q", got)
	}
	if WeekKey(day(2026, 3, 2)) != WeekKey(day(2026, 3, 6)) {
		t.Fatalf("days of one week must share a key")
	}
}

func TestWeekRandRange(t *testing.T) {
	r := newWeekRand("Mon Mar 02 2026")
	for i := 0; i < 10000; i++ {
		v := r.next()
		if v < 0 || v > 0.5 {
			t.Fatalf("next()=%v outside [0,0.5]", v)
		}
	}
}

func TestSelectWeeklyDeterministic(t *testing.T) {
	pool := DefaultPool()
	before := DefaultPool()

	a := SelectWeekly(pool, "Mon Mar 02 2026")
	b := SelectWeekly(pool, "Mon Mar 02 2026")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("selection changed between calls (-first +second):\n%s", diff)
	}
	if len(a) != WeeklyPicks {
		t.Fatalf("len=%d, want %d", len(a), WeeklyPicks)
	}

	known := map[string]bool{}
	for _, tpl := range pool {
		known[tpl.ID] = true
	}
	seen := map[string]bool{}
	for _, c := range a {
		if !known[c.ID] {
			t.Fatalf("pick %q not in pool", c.ID)
		}
		if seen[c.ID] {
			t.Fatalf("pick %q repeated", c.ID)
		}
		seen[c.ID] = true
		if c.Started || c.Completed {
			t.Fatalf("fresh pick %q carries progress", c.ID)
		}
	}
	if diff := cmp.Diff(before, pool); diff != "" {
		t.Fatalf("pool mutated:\n%s", diff)
	}
}

func TestSelectWeeklyKnownPicks(t *testing.T) {
	got := SelectWeekly(DefaultPool(), "Mon Mar 02 2026")
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	want := []string{"meditate_month", "no_phone_day", "vlog_day"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("picks for week of Mar 02 2026 (-want +got):\n%s", diff)
	}
}

func TestSelectWeeklySmallPool(t *testing.T) {
	pool := DefaultPool()[:2]
	if got := SelectWeekly(pool, "Mon Mar 02 2026"); len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
	if got := SelectWeekly(nil, "Mon Mar 02 2026"); len(got) != 0 {
		t.Fatalf("empty pool: len=%d, want 0", len(got))
	}
}

func TestMergeChallenges(t *testing.T) {
	pool := DefaultPool()
	started := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	saved := []storage.Challenge{
		{ID: "run_3km", Text: "old text", XP: 1, Started: true, StartedAt: &started},
		{ID: "custom_a", Text: "Write a poem", XP: 30, Category: "creativity", Duration: "daily"},
		{ID: "custom_a", Text: "dup", XP: 30, Category: "creativity", Duration: "daily"},
		{ID: "no_junk_month", Completed: true},
	}

	got := MergeChallenges(pool, saved)
	if len(got) != len(pool)+1 {
		t.Fatalf("len=%d, want %d", len(got), len(pool)+1)
	}
	for i, tpl := range pool {
		if got[i].ID != tpl.ID || got[i].Text != tpl.Text || got[i].XP != tpl.XP {
			t.Fatalf("entry %d = %+v, want template %+v", i, got[i], tpl)
		}
	}

	run := got[0]
	if !run.Started || run.StartedAt == nil || !run.StartedAt.Equal(started) {
		t.Fatalf("progress not carried: %+v", run)
	}
	if run.StartedAt == saved[0].StartedAt {
		t.Fatalf("StartedAt aliases the saved record")
	}
	if !got[challengeIndex(got, "no_junk_month")].Completed {
		t.Fatalf("completion not carried")
	}

	custom := got[len(got)-1]
	if custom.ID != "custom_a" || custom.Text != "Write a poem" || !custom.IsCustom {
		t.Fatalf("custom entry = %+v", custom)
	}

	again := MergeChallenges(pool, got)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("merge not idempotent (-once +twice):\n%s", diff)
	}
}

func TestTimeLeft(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, ok := TimeLeft(storage.Challenge{Duration: "daily"}, now); ok {
		t.Fatalf("unstarted challenge reported time left")
	}
	at := now.Add(-time.Hour)
	c := storage.Challenge{Duration: "daily", Started: true, StartedAt: &at}
	left, ok := TimeLeft(c, now)
	if !ok || left != 23*time.Hour {
		t.Fatalf("TimeLeft=%v ok=%v, want 23h", left, ok)
	}
	c.Duration = "weekly"
	if left, _ := TimeLeft(c, now); left != 7*24*time.Hour-time.Hour {
		t.Fatalf("weekly TimeLeft=%v", left)
	}
}

func TestFormatTimeLeft(t *testing.T) {
	cases := []struct {
		left time.Duration
		d    ChallengeDuration
		want string
	}{
		{0, DurationDaily, "Time's up!"},
		{-time.Minute, DurationWeekly, "Time's up!"},
		{90*time.Minute + 5*time.Second, DurationDaily, "1h 30m left"},
		{26 * time.Hour, DurationDaily, "26h 0m left"},
		{90 * time.Second, DurationDaily, "1m 30s left"},
		{45 * time.Second, DurationDaily, "45s left"},
		{2*24*time.Hour + 3*time.Hour, DurationWeekly, "2d 3h left"},
		{5 * time.Hour, DurationMonthly, "5h left"},
	}
	for _, tc := range cases {
		if got := FormatTimeLeft(tc.left, tc.d); got != tc.want {
			t.Fatalf("FormatTimeLeft(%v,%s)=%q, want %q", tc.left, tc.d, got, tc.want)
		}
	}
}

func TestGroupChallenges(t *testing.T) {
	all := []storage.Challenge{
		{ID: "a", Duration: "daily"},
		{ID: "b", Duration: "monthly"},
		{ID: "c", Duration: "daily", Completed: true},
		{ID: "d", Duration: "daily"},
	}
	open, done := GroupChallenges(all)
	if len(open[DurationDaily]) != 2 || open[DurationDaily][0].ID != "a" || open[DurationDaily][1].ID != "d" {
		t.Fatalf("daily group = %+v", open[DurationDaily])
	}
	if len(open[DurationMonthly]) != 1 || len(open[DurationWeekly]) != 0 {
		t.Fatalf("groups = %+v", open)
	}
	if len(done) != 1 || done[0].ID != "c" {
		t.Fatalf("completed = %+v", done)
	}
}
