package repository

import (
	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) WithTx(tx *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: tx}
}

// CreateIfAbsent inserts the assignment unless the (student, exercise) pair
// already exists. The unique composite index makes concurrent duplicates
// impossible.
func (r *AssignmentRepository) CreateIfAbsent(assignment *model.Assignment) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(assignment).Error
}

func (r *AssignmentRepository) Exists(studentID, exerciseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Assignment{}).
		Where("student_id = ? AND exercise_id = ?", studentID, exerciseID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) UpdateStatus(studentID, exerciseID uint, status model.AssignmentStatus) error {
	return r.DB.Model(&model.Assignment{}).
		Where("student_id = ? AND exercise_id = ?", studentID, exerciseID).
		Update("status", status).Error
}

// MarkSubmitted advances an in-progress assignment to Submitted. Assignments
// already graded as Completed are left untouched.
func (r *AssignmentRepository) MarkSubmitted(studentID, exerciseID uint) error {
	return r.DB.Model(&model.Assignment{}).
		Where("student_id = ? AND exercise_id = ? AND status = ?", studentID, exerciseID, model.StatusInProgress).
		Update("status", model.StatusSubmitted).Error
}

func (r *AssignmentRepository) FindByStudent(studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("student_id = ?", studentID).Find(&assignments).Error
	return assignments, err
}
