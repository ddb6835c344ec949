package service

import (
	"fmt"
	"strings"
	"testing"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the tutoring services against an in-memory database.
type testEnv struct {
	db *gorm.DB

	studentRepo    *repository.StudentRepository
	topicRepo      *repository.TopicRepository
	exerciseRepo   *repository.ExerciseRepository
	assignmentRepo *repository.AssignmentRepository
	hintRepo       *repository.HintRepository
	attemptRepo    *repository.AttemptRepository

	exercises   *ExerciseService
	hints       *HintService
	submissions *SubmissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Student{},
		&model.Topic{},
		&model.Exercise{},
		&model.Hint{},
		&model.Assignment{},
		&model.HintDelivery{},
		&model.Attempt{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:             db,
		studentRepo:    repository.NewStudentRepository(db),
		topicRepo:      repository.NewTopicRepository(db),
		exerciseRepo:   repository.NewExerciseRepository(db),
		assignmentRepo: repository.NewAssignmentRepository(db),
		hintRepo:       repository.NewHintRepository(db),
		attemptRepo:    repository.NewAttemptRepository(db),
	}
	env.exercises = NewExerciseService(db, env.exerciseRepo, env.assignmentRepo, env.topicRepo, env.studentRepo, 5)
	env.hints = NewHintService(db, env.hintRepo, env.exerciseRepo, env.studentRepo, env.assignmentRepo)
	env.submissions = NewSubmissionService(db, env.attemptRepo, env.exerciseRepo, env.studentRepo, env.assignmentRepo)
	return env
}

func (e *testEnv) addStudent(t *testing.T, userID string) *model.Student {
	t.Helper()
	student := &model.Student{UserID: userID, ChatID: "chat-" + userID, FirstName: "Ana", LastName: "García"}
	if err := e.studentRepo.Create(student); err != nil {
		t.Fatalf("create student: %v", err)
	}
	return student
}

func (e *testEnv) addTopic(t *testing.T, name string) *model.Topic {
	t.Helper()
	topic := &model.Topic{Name: name, Description: "Tema de prueba"}
	if err := e.topicRepo.Create(topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func (e *testEnv) addExercise(t *testing.T, topicID uint, title string, difficulty model.Difficulty, solution string) *model.Exercise {
	t.Helper()
	exercise := &model.Exercise{
		TopicID:     topicID,
		Title:       title,
		Description: "Descripción de " + title,
		Difficulty:  difficulty,
		Solution:    solution,
	}
	if err := e.exerciseRepo.Create(exercise); err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	return exercise
}

func (e *testEnv) addHint(t *testing.T, exerciseID uint, order int, text string) *model.Hint {
	t.Helper()
	hint := &model.Hint{ExerciseID: exerciseID, Order: order, HintText: text}
	if err := e.hintRepo.Create(hint); err != nil {
		t.Fatalf("create hint: %v", err)
	}
	return hint
}

func (e *testEnv) assign(t *testing.T, studentID, exerciseID uint, status model.AssignmentStatus) {
	t.Helper()
	assignment := &model.Assignment{StudentID: studentID, ExerciseID: exerciseID, Status: status}
	if err := e.assignmentRepo.CreateIfAbsent(assignment); err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if status != model.StatusInProgress {
		if err := e.assignmentRepo.UpdateStatus(studentID, exerciseID, status); err != nil {
			t.Fatalf("update assignment status: %v", err)
		}
	}
}

func (e *testEnv) assignmentStatus(t *testing.T, studentID, exerciseID uint) model.AssignmentStatus {
	t.Helper()
	var assignment model.Assignment
	err := e.db.Where("student_id = ? AND exercise_id = ?", studentID, exerciseID).First(&assignment).Error
	if err != nil {
		t.Fatalf("load assignment: %v", err)
	}
	return assignment.Status
}
