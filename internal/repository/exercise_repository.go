package repository

import (
	"errors"

	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) WithTx(tx *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: tx}
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

// FindByID returns (nil, nil) when the exercise does not exist.
func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) FindByTopic(topicID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.Where("topic_id = ?", topicID).Order("id ASC").Find(&exercises).Error
	return exercises, err
}

// assignedExerciseIDs is the subquery of exercises already recommended to the
// student, independent of topic.
func (r *ExerciseRepository) assignedExerciseIDs(studentID uint) *gorm.DB {
	return r.DB.Model(&model.Assignment{}).
		Select("exercise_id").
		Where("student_id = ?", studentID)
}

// FindUnattempted returns the exercises in the topic whose difficulty is one
// of the given tiers and which were never assigned to the student, ordered by
// id ascending so selection is deterministic.
func (r *ExerciseRepository) FindUnattempted(studentID, topicID uint, tiers []model.Difficulty) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.
		Where("topic_id = ?", topicID).
		Where("difficulty IN ?", tiers).
		Where("id NOT IN (?)", r.assignedExerciseIDs(studentID)).
		Order("id ASC").
		Find(&exercises).Error
	return exercises, err
}

// difficultyOrder maps the tier enum onto its ladder position so MAX() can
// compare difficulties in SQL.
const difficultyOrder = "CASE exercises.difficulty WHEN 'Basic' THEN 1 WHEN 'Intermediate' THEN 2 WHEN 'Advanced' THEN 3 ELSE 0 END"

// HighestCompletedDifficulty returns the maximum tier among the student's
// non-in-progress assignments in the topic, or "" when there is none.
func (r *ExerciseRepository) HighestCompletedDifficulty(studentID, topicID uint) (model.Difficulty, error) {
	var level *int
	err := r.DB.Model(&model.Assignment{}).
		Select("MAX(" + difficultyOrder + ")").
		Joins("JOIN exercises ON exercises.id = student_exercises.exercise_id").
		Where("student_exercises.student_id = ?", studentID).
		Where("exercises.topic_id = ?", topicID).
		Where("student_exercises.status <> ?", model.StatusInProgress).
		Scan(&level).Error
	if err != nil {
		return "", err
	}
	if level == nil || *level <= 0 || *level > len(model.DifficultyLadder) {
		return "", nil
	}
	return model.DifficultyLadder[*level-1], nil
}

// CountCompletedAtTier counts the student's non-in-progress assignments at
// exactly the given tier within the topic.
func (r *ExerciseRepository) CountCompletedAtTier(studentID, topicID uint, tier model.Difficulty) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Assignment{}).
		Joins("JOIN exercises ON exercises.id = student_exercises.exercise_id").
		Where("student_exercises.student_id = ?", studentID).
		Where("exercises.topic_id = ?", topicID).
		Where("exercises.difficulty = ?", tier).
		Where("student_exercises.status <> ?", model.StatusInProgress).
		Count(&count).Error
	return count, err
}
