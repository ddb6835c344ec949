package model

// Topic groups exercises under a course subject. Topics are seeded reference
// data; the bot never creates or mutates them.
type Topic struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Exercises []Exercise `gorm:"foreignKey:TopicID" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}
