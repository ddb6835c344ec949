package service

import (
	"testing"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/util"
)

func TestSubmitCodeRecordsAttemptAndAdvancesStatus(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.assign(t, student.ID, exercise.ID, model.StatusInProgress)

	if err := env.submissions.SubmitCode("100", exercise.ID, "for (;;) {}"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}

	count, err := env.attemptRepo.CountByStudentAndExercise(student.ID, exercise.ID)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Errorf("attempt count = %d, want 1", count)
	}

	if status := env.assignmentStatus(t, student.ID, exercise.ID); status != model.StatusSubmitted {
		t.Errorf("assignment status = %q, want %q", status, model.StatusSubmitted)
	}
}

func TestSubmitCodeAppendsAttempts(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.assign(t, student.ID, exercise.ID, model.StatusInProgress)

	for i := 0; i < 3; i++ {
		if err := env.submissions.SubmitCode("100", exercise.ID, "intento"); err != nil {
			t.Fatalf("SubmitCode #%d: %v", i+1, err)
		}
	}

	count, err := env.attemptRepo.CountByStudentAndExercise(student.ID, exercise.ID)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 3 {
		t.Errorf("attempt count = %d, want 3", count)
	}
}

func TestSubmitCodeDoesNotDowngradeCompleted(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.assign(t, student.ID, exercise.ID, model.StatusCompleted)

	if err := env.submissions.SubmitCode("100", exercise.ID, "otro intento"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}

	if status := env.assignmentStatus(t, student.ID, exercise.ID); status != model.StatusCompleted {
		t.Errorf("assignment status = %q, want %q (a late attempt must not regrade)", status, model.StatusCompleted)
	}
}

func TestSubmitCodeRequiresAssignment(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")

	err := env.submissions.SubmitCode("100", exercise.ID, "código")
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("error kind = %v, want KindPreconditionFailed (%v)", util.KindOf(err), err)
	}
}

func TestSubmitCodeUnknownExercise(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")

	err := env.submissions.SubmitCode("100", 9999, "código")
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}
