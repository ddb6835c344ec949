package model

import "time"

// QAHistory stores answered questions for auditing and session continuity.
type QAHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID uint      `gorm:"index" json:"studentId"`
	SessionID string    `gorm:"size:50;index" json:"sessionId"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Source    string    `gorm:"size:255" json:"source"` // document citation, or "llm" when nothing was retrieved
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (QAHistory) TableName() string {
	return "qa_histories"
}
