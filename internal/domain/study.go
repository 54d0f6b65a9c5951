package domain

// WordProgress pairs a word with the learner's review record for it.
type WordProgress struct {
	Word   *Word
	Record *ReviewRecord
}

// StudyItem is one entry of a study batch.
// Record is nil and IsNew is true for words the learner has never graded.
type StudyItem struct {
	Word   *Word         `json:"word"`
	Record *ReviewRecord `json:"record"`
	IsNew  bool          `json:"is_new"`
}

// StudyStats summarizes a learner's progress over the whole vocabulary.
type StudyStats struct {
	TotalWords    int `json:"total_words"`
	NewWords      int `json:"new_words"`
	LearningWords int `json:"learning_words"`
	ReviewWords   int `json:"review_words"`
	MasteredWords int `json:"mastered_words"`
	DueNow        int `json:"due_now"`
}
