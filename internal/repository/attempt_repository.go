package repository

import (
	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) CountByStudentAndExercise(studentID, exerciseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("student_id = ? AND exercise_id = ?", studentID, exerciseID).
		Count(&count).Error
	return count, err
}
