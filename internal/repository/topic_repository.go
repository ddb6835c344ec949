package repository

import (
	"errors"

	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) WithTx(tx *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: tx}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("name ASC").Find(&topics).Error
	return topics, err
}

// FindByName returns (nil, nil) when the topic does not exist.
func (r *TopicRepository) FindByName(name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("name = ?", name).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}
