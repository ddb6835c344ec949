package service

import (
	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"
	"tutorbot_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ExerciseService owns the exercise progression: resolving a student's
// demonstrated tier in a topic, promoting across tiers once enough exercises
// are completed, and recommending the first unattempted exercise.
type ExerciseService struct {
	db          *gorm.DB
	exercises   *repository.ExerciseRepository
	assignments *repository.AssignmentRepository
	topics      *repository.TopicRepository
	students    *repository.StudentRepository

	// promotionThreshold is the completed-exercise count at a tier that
	// promotes the student to the next one.
	promotionThreshold int
}

func NewExerciseService(
	db *gorm.DB,
	exercises *repository.ExerciseRepository,
	assignments *repository.AssignmentRepository,
	topics *repository.TopicRepository,
	students *repository.StudentRepository,
	promotionThreshold int,
) *ExerciseService {
	if promotionThreshold <= 0 {
		promotionThreshold = 5
	}
	return &ExerciseService{
		db:                 db,
		exercises:          exercises,
		assignments:        assignments,
		topics:             topics,
		students:           students,
		promotionThreshold: promotionThreshold,
	}
}

// HighestCompletedLevel returns the maximum difficulty among the student's
// assignments in the topic whose status has moved past In Progress, or ""
// when none has. Submitted-but-ungraded work counts toward promotion.
func (s *ExerciseService) HighestCompletedLevel(studentID, topicID uint) (model.Difficulty, error) {
	return s.exercises.HighestCompletedDifficulty(studentID, topicID)
}

// HasCompletedSufficientExercises reports whether the student has completed
// at least threshold exercises at exactly the given tier within the topic.
func (s *ExerciseService) HasCompletedSufficientExercises(studentID, topicID uint, tier model.Difficulty, threshold int) (bool, error) {
	count, err := s.exercises.CountCompletedAtTier(studentID, topicID, tier)
	if err != nil {
		return false, err
	}
	return count >= int64(threshold), nil
}

// UnattemptedExercises lists exercises in the topic at the given tier or
// above that were never assigned to the student, ordered by id ascending.
func (s *ExerciseService) UnattemptedExercises(studentID, topicID uint, tier model.Difficulty) ([]model.Exercise, error) {
	return s.exercises.FindUnattempted(studentID, topicID, model.TiersFrom(tier))
}

// resolveEffectiveTier applies the promotion policy: start from the highest
// completed tier (Basic when the student has no history), and move up one
// tier once enough exercises are completed at it. Saturates at the top.
func (s *ExerciseService) resolveEffectiveTier(exercises *repository.ExerciseRepository, studentID, topicID uint) (model.Difficulty, error) {
	tier, err := exercises.HighestCompletedDifficulty(studentID, topicID)
	if err != nil {
		return "", err
	}
	if tier == "" {
		return model.Basic, nil
	}

	count, err := exercises.CountCompletedAtTier(studentID, topicID, tier)
	if err != nil {
		return "", err
	}
	if count >= int64(s.promotionThreshold) {
		tier = model.NextDifficulty(tier)
	}
	return tier, nil
}

// RecommendExercise resolves the student's effective tier in the topic, picks
// the first unattempted exercise at that tier or above, and records the
// assignment. The read-check-write sequence runs in one transaction so two
// concurrent calls cannot double-assign an exercise.
func (s *ExerciseService) RecommendExercise(userID, topicName string) (*model.Exercise, error) {
	var picked *model.Exercise

	err := s.db.Transaction(func(tx *gorm.DB) error {
		students := s.students.WithTx(tx)
		topics := s.topics.WithTx(tx)
		exercises := s.exercises.WithTx(tx)
		assignments := s.assignments.WithTx(tx)

		student, err := students.FindByUserID(userID)
		if err != nil {
			return util.StoreError(err)
		}
		if student == nil {
			return util.NotFoundError("No se encontró al usuario en el sistema.")
		}

		topic, err := topics.FindByName(topicName)
		if err != nil {
			return util.StoreError(err)
		}
		if topic == nil {
			return util.NotFoundError("El tema '" + topicName + "' no existe. Por favor, elige otro.")
		}

		tier, err := s.resolveEffectiveTier(exercises, student.ID, topic.ID)
		if err != nil {
			return util.StoreError(err)
		}

		candidates, err := exercises.FindUnattempted(student.ID, topic.ID, model.TiersFrom(tier))
		if err != nil {
			return util.StoreError(err)
		}
		if len(candidates) == 0 {
			return util.ExhaustedError("No se encontraron ejercicios disponibles para tu nivel.")
		}

		// Deterministic policy: first candidate by ascending id.
		picked = &candidates[0]

		assignment := &model.Assignment{
			StudentID:  student.ID,
			ExerciseID: picked.ID,
			Status:     model.StatusInProgress,
		}
		if err := assignments.CreateIfAbsent(assignment); err != nil {
			return util.StoreError(err)
		}

		monitoring.RecommendationCounter.WithLabelValues(string(picked.Difficulty)).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return picked, nil
}

// GetSolution returns the exercise's solution text. A missing exercise and a
// missing solution are distinct failures.
func (s *ExerciseService) GetSolution(exerciseID uint) (string, error) {
	exercise, err := s.exercises.FindByID(exerciseID)
	if err != nil {
		return "", util.StoreError(err)
	}
	if exercise == nil {
		return "", util.NotFoundError("No encontramos el ejercicio, verifica el número.")
	}
	if exercise.Solution == "" {
		return "", util.PreconditionError("No tenemos solución para este ejercicio.")
	}
	return exercise.Solution, nil
}

// ExercisesByTopic lists a topic's exercises for the admin API.
func (s *ExerciseService) ExercisesByTopic(topicName string) ([]model.Exercise, error) {
	topic, err := s.topics.FindByName(topicName)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if topic == nil {
		return nil, util.NotFoundError("El tema '" + topicName + "' no existe. Por favor, elige otro.")
	}

	exercises, err := s.exercises.FindByTopic(topic.ID)
	if err != nil {
		return nil, util.StoreError(err)
	}
	return exercises, nil
}

// CreateExercise registers an exercise through the admin API.
func (s *ExerciseService) CreateExercise(topicName, title, description string, difficulty model.Difficulty, solution string) (*model.Exercise, error) {
	if model.DifficultyIndex(difficulty) < 0 {
		return nil, util.PreconditionError("La dificultad debe ser Basic, Intermediate o Advanced.")
	}

	topic, err := s.topics.FindByName(topicName)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if topic == nil {
		return nil, util.NotFoundError("El tema '" + topicName + "' no existe. Por favor, elige otro.")
	}

	exercise := &model.Exercise{
		TopicID:     topic.ID,
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		Solution:    solution,
	}
	if err := s.exercises.Create(exercise); err != nil {
		return nil, util.StoreError(err)
	}
	return exercise, nil
}
