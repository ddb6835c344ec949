package model

// Hint is one step of an exercise's ordered hint sequence. Order defines the
// delivery sequence; ties are broken by id.
type Hint struct {
	BaseModel
	ExerciseID uint   `gorm:"index;not null" json:"exerciseId"`
	Order      int    `gorm:"column:hint_order;not null;default:0" json:"order"`
	HintText   string `gorm:"type:text;not null" json:"hintText"`
}

func (Hint) TableName() string {
	return "exercise_hints"
}

// HintDelivery records that a hint was shown to a student. Append-only: its
// presence is the sole source of "already shown" truth, so rows are never
// updated or deleted.
type HintDelivery struct {
	BaseModel
	StudentID uint `gorm:"uniqueIndex:idx_student_hint;not null" json:"studentId"`
	HintID    uint `gorm:"uniqueIndex:idx_student_hint;not null" json:"hintId"`
}

func (HintDelivery) TableName() string {
	return "hint_deliveries"
}
