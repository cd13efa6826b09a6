package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// QuestionsPerRound is the batch size requested from the generator.
const QuestionsPerRound = 3

type Question struct {
	ID         string     `json:"id"`
	Round      Round      `json:"round"`
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
}
