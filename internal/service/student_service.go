package service

import (
	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"
)

type StudentService struct {
	students *repository.StudentRepository
}

func NewStudentService(students *repository.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// GetStudent resolves the external Telegram identity to a registered student.
func (s *StudentService) GetStudent(userID string) (*model.Student, error) {
	student, err := s.students.FindByUserID(userID)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if student == nil {
		return nil, util.NotFoundError("No se encontró al usuario en el sistema.")
	}
	return student, nil
}

// CreateStudent registers a new student; registering the same Telegram
// identity twice is a precondition failure.
func (s *StudentService) CreateStudent(userID, chatID, firstName, lastName string) (*model.Student, error) {
	exists, err := s.students.ExistsByUserID(userID)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if exists {
		return nil, util.PreconditionError("Ya estás registrado en el sistema.")
	}

	student := &model.Student{
		UserID:    userID,
		ChatID:    chatID,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.students.Create(student); err != nil {
		return nil, util.StoreError(err)
	}
	return student, nil
}
