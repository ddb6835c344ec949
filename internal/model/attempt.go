package model

// Attempt is an immutable record of one code submission. Append-only audit
// log; attempts are never updated.
type Attempt struct {
	BaseModel
	StudentID     uint   `gorm:"index;not null" json:"studentId"`
	ExerciseID    uint   `gorm:"index;not null" json:"exerciseId"`
	SubmittedCode string `gorm:"type:text;not null" json:"submittedCode"`
}

func (Attempt) TableName() string {
	return "attempts"
}
