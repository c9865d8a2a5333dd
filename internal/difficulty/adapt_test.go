package difficulty

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/progress"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func TestAdapt(t *testing.T) {
	tests := []struct {
		name    string
		current progress.Difficulty
		metrics Metrics
		want    progress.Difficulty
		applied bool
	}{
		{"low quiz score", progress.Intermediate, Metrics{QuizScore: f(0.3)}, progress.Beginner, true},
		{"low average", progress.Advanced, Metrics{AverageScore: f(0.4)}, progress.Intermediate, true},
		{"retry limit", progress.Intermediate, Metrics{RetryCount: n(3)}, progress.Beginner, true},
		{"high quiz score", progress.Beginner, Metrics{QuizScore: f(0.85)}, progress.Intermediate, true},
		{"first-try good score", progress.Beginner, Metrics{QuizScore: f(0.7), RetryCount: n(0)}, progress.Intermediate, true},
		{"good score with retries", progress.Beginner, Metrics{QuizScore: f(0.7), RetryCount: n(1)}, progress.Beginner, false},
		{"middling", progress.Intermediate, Metrics{QuizScore: f(0.6), AverageScore: f(0.6)}, progress.Intermediate, false},
		{"decrease beats increase", progress.Intermediate, Metrics{QuizScore: f(0.9), RetryCount: n(3)}, progress.Beginner, true},
		{"clamped at beginner", progress.Beginner, Metrics{QuizScore: f(0.1)}, progress.Beginner, false},
		{"clamped at beginner with increase trigger", progress.Beginner, Metrics{QuizScore: f(0.9), RetryCount: n(4)}, progress.Beginner, false},
		{"clamped at advanced", progress.Advanced, Metrics{QuizScore: f(1.0)}, progress.Advanced, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Adapt("Loops", tt.current, tt.metrics)
			if err != nil {
				t.Fatal(err)
			}
			if res.New != tt.want || res.Applied != tt.applied {
				t.Errorf("got %s (applied=%v), want %s (applied=%v); reason %q",
					res.New, res.Applied, tt.want, tt.applied, res.Reason)
			}
			if res.Old != tt.current || !res.New.Valid() {
				t.Errorf("bad levels: %+v", res)
			}
		})
	}
}

func TestAdapt_Reason(t *testing.T) {
	res, err := Adapt("Loops", progress.Intermediate, Metrics{QuizScore: f(0.3), RetryCount: n(3)})
	if err != nil {
		t.Fatal(err)
	}
	want := "Decreasing difficulty: Low quiz score (0.30 < 0.5), High retry count (3 >= 3). " +
		"Difficulty decreased from intermediate to beginner."
	if res.Reason != want {
		t.Errorf("reason =\n%q\nwant\n%q", res.Reason, want)
	}

	res, _ = Adapt("Loops", progress.Advanced, Metrics{QuizScore: f(0.65)})
	if !strings.HasSuffix(res.Reason, "Difficulty maintained at advanced.") {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestAdapt_Errors(t *testing.T) {
	tests := []struct {
		name    string
		current progress.Difficulty
		metrics Metrics
		want    error
	}{
		{"no metrics", progress.Beginner, Metrics{}, ErrNoMetrics},
		{"quiz score above range", progress.Beginner, Metrics{QuizScore: f(1.2)}, ErrInvalidMetric},
		{"average below range", progress.Beginner, Metrics{AverageScore: f(-0.1)}, ErrInvalidMetric},
		{"quiz score NaN", progress.Beginner, Metrics{QuizScore: f(math.NaN())}, ErrInvalidMetric},
		{"average NaN", progress.Intermediate, Metrics{AverageScore: f(math.NaN())}, ErrInvalidMetric},
		{"negative retries", progress.Beginner, Metrics{RetryCount: n(-1)}, ErrInvalidMetric},
		{"unknown level", progress.Difficulty(9), Metrics{QuizScore: f(0.5)}, ErrUnknownLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Adapt("Loops", tt.current, tt.metrics); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := AdaptNamed("Loops", "expert", Metrics{QuizScore: f(0.5)}); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("AdaptNamed error = %v", err)
	}
}

func TestFromConcept(t *testing.T) {
	c := progress.NewConcept("Loops", progress.Intermediate)
	m := FromConcept(c)
	if m.QuizScore != nil || m.AverageScore != nil || m.RetryCount == nil || *m.RetryCount != 0 {
		t.Errorf("unscored metrics = %+v", m)
	}

	_ = c.MarkQuizzed(0.2)
	m = FromConcept(c)
	if *m.QuizScore != 0.2 || *m.AverageScore != 0.2 || *m.RetryCount != 1 {
		t.Errorf("scored metrics = %+v", m)
	}
}
