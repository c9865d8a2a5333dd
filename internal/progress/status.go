package progress

// Status is a concept's position in the teach/quiz lifecycle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusTaught     Status = "taught"
	StatusQuizzed    Status = "quizzed"
	StatusMastered   Status = "mastered"
	StatusNeedsRetry Status = "needs_retry"
)

// transitions lists the statuses reachable from each status. Nothing returns
// to not_started; re-teaching and re-quizzing are allowed from every state.
var transitions = map[Status][]Status{
	StatusNotStarted: {StatusInProgress, StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
	StatusInProgress: {StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
	StatusTaught:     {StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
	StatusQuizzed:    {StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
	StatusMastered:   {StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
	StatusNeedsRetry: {StatusInProgress, StatusTaught, StatusQuizzed, StatusMastered, StatusNeedsRetry},
}

// CanTransition reports whether a concept may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTaught reports whether teaching has happened for a concept in this status.
func (s Status) IsTaught() bool {
	return s == StatusTaught || s == StatusQuizzed || s == StatusMastered
}
