package progress

import (
	"errors"
	"math"
	"testing"
)

func TestMarkQuizzed_StatusByScore(t *testing.T) {
	tests := []struct {
		score      float64
		wantStatus Status
		wantRetry  int
	}{
		{1.0, StatusMastered, 0},
		{0.8, StatusMastered, 0},
		{0.79, StatusQuizzed, 0},
		{0.6, StatusQuizzed, 0},
		{0.59, StatusNeedsRetry, 1},
		{0.0, StatusNeedsRetry, 1},
	}

	for _, tt := range tests {
		c := NewConcept("Variables", Beginner)
		c.MarkTaught()
		if err := c.MarkQuizzed(tt.score); err != nil {
			t.Fatalf("MarkQuizzed(%v): %v", tt.score, err)
		}
		if c.Status() != tt.wantStatus {
			t.Errorf("score %v: status = %s, want %s", tt.score, c.Status(), tt.wantStatus)
		}
		if c.RetryCount() != tt.wantRetry {
			t.Errorf("score %v: retry_count = %d, want %d", tt.score, c.RetryCount(), tt.wantRetry)
		}
		if !c.QuizTaken() {
			t.Errorf("score %v: quiz_taken should be true", tt.score)
		}
		if v, ok := c.Score().Value(); !ok || v != tt.score {
			t.Errorf("score %v: stored score = %v (set=%v)", tt.score, v, ok)
		}
		if c.QuizzedAt() == nil {
			t.Errorf("score %v: quizzed_at not stamped", tt.score)
		}
	}
}

func TestMarkQuizzed_RejectsOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		c := NewConcept("Loops", Beginner)
		err := c.MarkQuizzed(score)
		if !errors.Is(err, ErrScoreOutOfRange) {
			t.Fatalf("MarkQuizzed(%v) error = %v, want ErrScoreOutOfRange", score, err)
		}
		if c.QuizTaken() || c.Score().IsSet() || c.Status() != StatusNotStarted {
			t.Fatalf("MarkQuizzed(%v) mutated the concept", score)
		}
	}
}

func TestMarkQuizzed_RetryCountMonotonic(t *testing.T) {
	c := NewConcept("Closures", Advanced)
	for i := 1; i <= 4; i++ {
		if err := c.MarkQuizzed(0.2); err != nil {
			t.Fatal(err)
		}
		if c.RetryCount() != i {
			t.Fatalf("after %d failures retry_count = %d", i, c.RetryCount())
		}
	}
}

func TestMarkTaught_FromAnyStatus(t *testing.T) {
	c := NewConcept("Functions", Intermediate)
	if err := c.MarkQuizzed(0.9); err != nil {
		t.Fatal(err)
	}
	c.MarkTaught()
	if c.Status() != StatusTaught {
		t.Fatalf("status = %s, want taught", c.Status())
	}
	if c.TaughtAt() == nil {
		t.Fatal("taught_at not stamped")
	}
}

func TestIncrementRetry(t *testing.T) {
	c := NewConcept("Functions", Beginner)
	c.MarkTaught()
	c.IncrementRetry()
	if c.Status() != StatusNeedsRetry || c.RetryCount() != 1 {
		t.Fatalf("got status %s retry %d", c.Status(), c.RetryCount())
	}
	c.ResetRetries()
	if c.RetryCount() != 0 || c.Status() != StatusNeedsRetry {
		t.Fatalf("ResetRetries: got status %s retry %d", c.Status(), c.RetryCount())
	}
}

func TestUpdateDifficulty_NoStatusChange(t *testing.T) {
	c := NewConcept("Functions", Beginner)
	c.MarkTaught()
	c.UpdateDifficulty(Advanced)
	if c.Difficulty() != Advanced || c.Status() != StatusTaught {
		t.Fatalf("got difficulty %s status %s", c.Difficulty(), c.Status())
	}
}

func TestStart(t *testing.T) {
	c := NewConcept("Recursion", Beginner)
	if !c.Start() {
		t.Fatal("expected not_started -> in_progress")
	}
	if c.Status() != StatusInProgress {
		t.Fatalf("status = %s", c.Status())
	}
	c.MarkTaught()
	if c.Start() {
		t.Fatal("Start should not change a taught concept")
	}
}

func TestSnapshot(t *testing.T) {
	c := NewConcept("Recursion", Intermediate)
	snap := c.Snapshot()
	if snap.Score != nil {
		t.Fatal("unquizzed concept should have nil score")
	}
	_ = c.MarkQuizzed(0.65)
	snap = c.Snapshot()
	if snap.Score == nil || *snap.Score != 0.65 {
		t.Fatalf("snapshot score = %v", snap.Score)
	}
	if snap.Status != StatusQuizzed || snap.Difficulty != Intermediate {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestCanTransition(t *testing.T) {
	if CanTransition(StatusTaught, StatusNotStarted) {
		t.Error("nothing returns to not_started")
	}
	if !CanTransition(StatusNeedsRetry, StatusTaught) {
		t.Error("needs_retry must loop back via re-teaching")
	}
	if !CanTransition(StatusNotStarted, StatusInProgress) {
		t.Error("not_started -> in_progress must be legal")
	}
}
