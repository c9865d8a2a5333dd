package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{tableLLMEvents, tableStepEvents, tableSnapshots, tableSequence} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestAutoMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)

	for _, index := range []string{"step_events_session_id", "snapshots_session_id"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		require.NoError(t, err, index)
		assert.Equal(t, index, name)
	}
}

func TestAutoMigrationIsIdempotent(t *testing.T) {
	dsn := "file:migrate_twice?mode=memory&cache=shared"
	first, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })

	ctx := context.Background()
	require.NoError(t, first.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "plan", Success: true,
	}))

	second, err := Open(dsn)
	require.NoError(t, err, "reopening an existing journal")
	t.Cleanup(func() { second.Close() })

	events, err := second.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1, "existing rows survive migration")
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(ctx, s.DB())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), seq)
	}
}

func TestLLMEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "plan", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nplan", ResponseBody: `{"concepts":[]}`},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "teach", InputTokens: 80, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "quiz", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz", InputTokens: 50, OutputTokens: 60, LatencyMs: 500, Success: true},
	}
	for _, c := range calls {
		require.NoError(t, repo.AppendLLMRequest(ctx, c))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "gpt-4o-mini", events[0].Model, "newest first")
	assert.Greater(t, events[0].Sequence, events[1].Sequence)

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz", Limit: 1})
	require.NoError(t, err)
	require.Len(t, quiz, 1)
	assert.Equal(t, "openai", quiz[0].Provider)

	older, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: events[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, older, 2)

	first, err := repo.GetLLMEvent(ctx, events[3].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "plan", first.Purpose)
	assert.Equal(t, "[user]\nplan", first.RequestBody)
	assert.True(t, first.Success)
	assert.WithinDuration(t, time.Now(), first.Timestamp, time.Minute)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, c := range []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "quiz", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "quiz", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: false},
		{Provider: "mock", Model: "m2", Purpose: "teach", InputTokens: 1, OutputTokens: 2, LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, c))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, UsageStat{Key: "quiz", Calls: 2, Failures: 1, InputTokens: 30, OutputTokens: 10, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "m2", byModel[1].Key)
	assert.Equal(t, 1, byModel[1].Calls)
}

func TestStepEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	steps := []StepEventData{
		{SessionID: "s1", Topic: "Go", Iteration: 1, Action: "plan_learning_path", Reason: "No learning path exists", Success: true},
		{SessionID: "s2", Topic: "Rust", Iteration: 1, Action: "plan_learning_path", Success: false, ErrorMessage: "provider unavailable"},
		{SessionID: "s1", Topic: "Go", Iteration: 2, Action: "add_concept", Concept: "Variables", Success: true, Progress: 0},
		{SessionID: "s1", Topic: "Go", Iteration: 3, Action: "teach_concept", Concept: "Variables", Success: true, Progress: 50},
	}
	for _, st := range steps {
		require.NoError(t, repo.AppendStep(ctx, st))
	}

	got, err := repo.SessionSteps(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, st := range got {
		assert.Equal(t, i+1, st.Iteration)
	}
	assert.Equal(t, "Variables", got[2].Concept)

	sessions, err := repo.ListSessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := map[string]SessionSummary{}
	for _, ss := range sessions {
		byID[ss.SessionID] = ss
	}
	assert.Equal(t, 3, byID["s1"].Steps)
	assert.Equal(t, "Go", byID["s1"].Topic)
	assert.Equal(t, 50.0, byID["s1"].LastProgress)
	assert.Equal(t, 1, byID["s2"].Steps)

	none, err := repo.SessionSteps(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, snap, "no snapshot yet")

	for i := 1; i <= 3; i++ {
		data, _ := json.Marshal(map[string]int{"iteration": i})
		require.NoError(t, repo.Save(ctx, &Snapshot{SessionID: "s1", Sequence: int64(i), Data: data}))
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{SessionID: "other", Sequence: 10, Data: json.RawMessage(`{}`)}))

	snap, err = repo.Latest(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(3), snap.Sequence)
	assert.JSONEq(t, `{"iteration":3}`, string(snap.Data))
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{SessionID: "s1", Sequence: int64(i), Data: json.RawMessage(`{}`)}))
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{SessionID: "s2", Sequence: 1, Data: json.RawMessage(`{}`)}))

	require.NoError(t, repo.Prune(ctx, "s1", 5))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots WHERE session_id = 's1'").Scan(&count))
	assert.Equal(t, 5, count)

	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots WHERE session_id = 's2'").Scan(&count))
	assert.Equal(t, 1, count, "other sessions untouched")

	snap, err := repo.Latest(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.Sequence)

	// Fewer than keep is a no-op.
	require.NoError(t, repo.Prune(ctx, "s2", 5))
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STUDYBUDDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/studybuddy/studybuddy.db", p)
	assert.DirExists(t, dir+"/studybuddy")

	t.Setenv("STUDYBUDDY_DB", dir+"/custom/journal.db")
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/custom/journal.db", p)
	assert.DirExists(t, dir+"/custom")
}
