package model

// Exercise is a programming exercise belonging to one topic. The description
// and solution may carry LaTeX-flavored markup and fenced code blocks that
// the bot converts before sending.
type Exercise struct {
	BaseModel
	TopicID     uint       `gorm:"index;not null" json:"topicId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Difficulty  Difficulty `gorm:"size:20;index;not null" json:"difficulty"`
	Solution    string     `gorm:"type:text" json:"solution,omitempty"`

	Topic Topic  `gorm:"foreignKey:TopicID" json:"-"`
	Hints []Hint `gorm:"foreignKey:ExerciseID" json:"-"`
}

func (Exercise) TableName() string {
	return "exercises"
}
