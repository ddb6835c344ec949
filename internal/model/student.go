package model

import "strings"

// Student is a registered Telegram user of the tutor. UserID is the external
// Telegram identity; ChatID is where replies are sent.
type Student struct {
	BaseModel
	UserID    string `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	ChatID    string `gorm:"size:64;uniqueIndex;not null" json:"chatId"`
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
