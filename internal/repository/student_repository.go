package repository

import (
	"errors"

	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StudentRepository) WithTx(tx *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: tx}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

// FindByUserID looks a student up by external Telegram identity. Returns
// (nil, nil) when no student exists.
func (r *StudentRepository) FindByUserID(userID string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("user_id = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) ExistsByUserID(userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Student{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
