package service

import (
	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"
	"tutorbot_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// HintService dispenses an exercise's hints one at a time, in hint order,
// never repeating a hint for the same student.
type HintService struct {
	db          *gorm.DB
	hints       *repository.HintRepository
	exercises   *repository.ExerciseRepository
	students    *repository.StudentRepository
	assignments *repository.AssignmentRepository
}

func NewHintService(
	db *gorm.DB,
	hints *repository.HintRepository,
	exercises *repository.ExerciseRepository,
	students *repository.StudentRepository,
	assignments *repository.AssignmentRepository,
) *HintService {
	return &HintService{
		db:          db,
		hints:       hints,
		exercises:   exercises,
		students:    students,
		assignments: assignments,
	}
}

// GiveHint returns the next hint of the exercise that the student has not
// seen yet, recording the delivery. Hints are only given for exercises the
// system previously recommended. The check-then-insert runs in one
// transaction so a hint is never delivered twice.
func (s *HintService) GiveHint(userID string, exerciseID uint) (*model.Hint, error) {
	var given *model.Hint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exercises := s.exercises.WithTx(tx)
		students := s.students.WithTx(tx)
		assignments := s.assignments.WithTx(tx)
		hints := s.hints.WithTx(tx)

		exercise, err := exercises.FindByID(exerciseID)
		if err != nil {
			return util.StoreError(err)
		}
		if exercise == nil {
			return util.NotFoundError("No encontramos el ejercicio, verifica el número.")
		}

		student, err := students.FindByUserID(userID)
		if err != nil {
			return util.StoreError(err)
		}
		if student == nil {
			return util.NotFoundError("No se encontró al usuario en el sistema.")
		}

		assigned, err := assignments.Exists(student.ID, exercise.ID)
		if err != nil {
			return util.StoreError(err)
		}
		if !assigned {
			return util.PreconditionError("Parece que no te he recomendado ese ejercicio.")
		}

		ordered, err := hints.FindByExerciseOrdered(exercise.ID)
		if err != nil {
			return util.StoreError(err)
		}
		if len(ordered) == 0 {
			return util.PreconditionError("No hay pistas disponibles para este ejercicio.")
		}

		delivered, err := hints.DeliveredHintIDs(student.ID)
		if err != nil {
			return util.StoreError(err)
		}

		for i := range ordered {
			if !delivered[ordered[i].ID] {
				given = &ordered[i]
				break
			}
		}
		if given == nil {
			return util.PreconditionError("Ya se te han dado todas las pistas disponibles para este ejercicio.")
		}

		delivery := &model.HintDelivery{StudentID: student.ID, HintID: given.ID}
		if err := hints.CreateDeliveryIfAbsent(delivery); err != nil {
			return util.StoreError(err)
		}

		monitoring.HintDeliveryCounter.Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return given, nil
}

// CreateHint appends a hint to an exercise through the admin API.
func (s *HintService) CreateHint(exerciseID uint, order int, text string) (*model.Hint, error) {
	exercise, err := s.exercises.FindByID(exerciseID)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if exercise == nil {
		return nil, util.NotFoundError("No encontramos el ejercicio, verifica el número.")
	}

	hint := &model.Hint{ExerciseID: exerciseID, Order: order, HintText: text}
	if err := s.hints.Create(hint); err != nil {
		return nil, util.StoreError(err)
	}
	return hint, nil
}
