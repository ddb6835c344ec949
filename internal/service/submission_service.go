package service

import (
	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionService records code submissions. Attempts are an append-only
// audit log; a submission also advances the assignment to Submitted so the
// exercise counts toward tier promotion.
type SubmissionService struct {
	db          *gorm.DB
	attempts    *repository.AttemptRepository
	exercises   *repository.ExerciseRepository
	students    *repository.StudentRepository
	assignments *repository.AssignmentRepository
}

func NewSubmissionService(
	db *gorm.DB,
	attempts *repository.AttemptRepository,
	exercises *repository.ExerciseRepository,
	students *repository.StudentRepository,
	assignments *repository.AssignmentRepository,
) *SubmissionService {
	return &SubmissionService{
		db:          db,
		attempts:    attempts,
		exercises:   exercises,
		students:    students,
		assignments: assignments,
	}
}

// SubmitCode stores one attempt for a recommended exercise. Not idempotent:
// every call appends a new attempt, so callers must not blindly retry.
func (s *SubmissionService) SubmitCode(userID string, exerciseID uint, code string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		exercises := s.exercises.WithTx(tx)
		students := s.students.WithTx(tx)
		assignments := s.assignments.WithTx(tx)
		attempts := s.attempts.WithTx(tx)

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
			return util.NotFoundError("El estudiante no está registrado.")
		}

		assigned, err := assignments.Exists(student.ID, exercise.ID)
		if err != nil {
			return util.StoreError(err)
		}
		if !assigned {
			return util.PreconditionError("Parece que no te he recomendado ese ejercicio.")
		}

		attempt := &model.Attempt{
			StudentID:     student.ID,
			ExerciseID:    exercise.ID,
			SubmittedCode: code,
		}
		if err := attempts.Create(attempt); err != nil {
			return util.StoreError(err)
		}

		if err := assignments.MarkSubmitted(student.ID, exercise.ID); err != nil {
			return util.StoreError(err)
		}
		return nil
	})
}
