package progress

import (
	"fmt"
	"strings"
)

// Difficulty is the ordered difficulty scale: Beginner < Intermediate < Advanced.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
)

var difficultyNames = [...]string{"beginner", "intermediate", "advanced"}

// ErrUnknownDifficulty is returned when a difficulty name is not recognized.
type ErrUnknownDifficulty struct {
	Name string
}

func (e *ErrUnknownDifficulty) Error() string {
	return fmt.Sprintf("unknown difficulty level: %q", e.Name)
}

// ParseDifficulty converts a level name into a Difficulty. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseDifficulty(name string) (Difficulty, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, dn := range difficultyNames {
		if n == dn {
			return Difficulty(i), nil
		}
	}
	return Beginner, &ErrUnknownDifficulty{Name: name}
}

// Valid reports whether d is inside the Beginner..Advanced range.
func (d Difficulty) Valid() bool {
	return d >= Beginner && d <= Advanced
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Easier returns the level one step below d. The second return value is
// false when d is already Beginner, in which case d is returned unchanged.
func (d Difficulty) Easier() (Difficulty, bool) {
	if d <= Beginner {
		return Beginner, false
	}
	return d - 1, true
}

// Harder returns the level one step above d. The second return value is
// false when d is already Advanced, in which case d is returned unchanged.
func (d Difficulty) Harder() (Difficulty, bool) {
	if d >= Advanced {
		return Advanced, false
	}
	return d + 1, true
}

// MarshalText encodes the difficulty by name, for JSON and YAML.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("marshal difficulty: out of range %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a difficulty name.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
