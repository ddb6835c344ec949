package repository

import (
	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HintRepository struct {
	DB *gorm.DB
}

func NewHintRepository(db *gorm.DB) *HintRepository {
	return &HintRepository{DB: db}
}

func (r *HintRepository) WithTx(tx *gorm.DB) *HintRepository {
	return &HintRepository{DB: tx}
}

func (r *HintRepository) Create(hint *model.Hint) error {
	return r.DB.Create(hint).Error
}

// FindByExerciseOrdered returns the exercise's hints in delivery order:
// ascending hint_order, ties broken by id.
func (r *HintRepository) FindByExerciseOrdered(exerciseID uint) ([]model.Hint, error) {
	var hints []model.Hint
	err := r.DB.Where("exercise_id = ?", exerciseID).
		Order("hint_order ASC, id ASC").
		Find(&hints).Error
	return hints, err
}

// DeliveredHintIDs returns the set of hint ids already shown to the student.
func (r *HintRepository) DeliveredHintIDs(studentID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.HintDelivery{}).
		Where("student_id = ?", studentID).
		Pluck("hint_id", &ids).Error
	if err != nil {
		return nil, err
	}
	delivered := make(map[uint]bool, len(ids))
	for _, id := range ids {
		delivered[id] = true
	}
	return delivered, nil
}

// CreateDeliveryIfAbsent records the delivery once; the unique composite
// index keeps a (student, hint) pair from ever being recorded twice.
func (r *HintRepository) CreateDeliveryIfAbsent(delivery *model.HintDelivery) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(delivery).Error
}
