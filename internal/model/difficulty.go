package model

// Difficulty is the ordered classification attached to every exercise.
type Difficulty string

const (
	Basic        Difficulty = "Basic"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// DifficultyLadder is the fixed progression order, lowest tier first.
var DifficultyLadder = []Difficulty{Basic, Intermediate, Advanced}

// DifficultyIndex returns the position of d in the ladder, or -1 if d is not
// a known tier.
func DifficultyIndex(d Difficulty) int {
	for i, tier := range DifficultyLadder {
		if tier == d {
			return i
		}
	}
	return -1
}

// TiersFrom returns the ladder suffix starting at d. An unknown or empty tier
// yields the full ladder, so callers fall back to recommending anything.
func TiersFrom(d Difficulty) []Difficulty {
	idx := DifficultyIndex(d)
	if idx < 0 {
		return DifficultyLadder
	}
	return DifficultyLadder[idx:]
}

// NextDifficulty returns the tier after d, saturating at the highest tier.
// It never indexes past the end of the ladder.
func NextDifficulty(d Difficulty) Difficulty {
	idx := DifficultyIndex(d)
	if idx < 0 {
		return DifficultyLadder[0]
	}
	if idx+1 >= len(DifficultyLadder) {
		return DifficultyLadder[len(DifficultyLadder)-1]
	}
	return DifficultyLadder[idx+1]
}
