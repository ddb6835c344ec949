package model

// AssignmentStatus tracks how far a student has taken a recommended exercise.
type AssignmentStatus string

const (
	StatusInProgress AssignmentStatus = "In Progress"
	StatusSubmitted  AssignmentStatus = "Submitted"
	StatusCompleted  AssignmentStatus = "Completed"
)

// Assignment records that an exercise was recommended to a student. The
// (student, exercise) pair is unique; recommending never duplicates a row.
// Assignments are never deleted, only advanced through statuses.
type Assignment struct {
	BaseModel
	StudentID  uint             `gorm:"uniqueIndex:idx_student_exercise;not null" json:"studentId"`
	ExerciseID uint             `gorm:"uniqueIndex:idx_student_exercise;not null" json:"exerciseId"`
	Status     AssignmentStatus `gorm:"size:20;not null;default:'In Progress'" json:"status"`

	Exercise Exercise `gorm:"foreignKey:ExerciseID" json:"-"`
}

func (Assignment) TableName() string {
	return "student_exercises"
}
