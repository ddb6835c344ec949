package service

import (
	"testing"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/util"
)

func TestGiveHintInOrder(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.assign(t, student.ID, exercise.ID, model.StatusInProgress)

	// Inserted out of order on purpose; delivery must follow hint_order.
	env.addHint(t, exercise.ID, 3, "tercera pista")
	env.addHint(t, exercise.ID, 1, "primera pista")
	env.addHint(t, exercise.ID, 2, "segunda pista")

	want := []string{"primera pista", "segunda pista", "tercera pista"}
	for i, text := range want {
		hint, err := env.hints.GiveHint("100", exercise.ID)
		if err != nil {
			t.Fatalf("GiveHint #%d: %v", i+1, err)
		}
		if hint.HintText != text {
			t.Errorf("hint #%d = %q, want %q", i+1, hint.HintText, text)
		}
	}

	_, err := env.hints.GiveHint("100", exercise.ID)
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("after all hints: error kind = %v, want KindPreconditionFailed (%v)", util.KindOf(err), err)
	}
}

func TestGiveHintRequiresAssignment(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.addHint(t, exercise.ID, 1, "primera pista")

	_, err := env.hints.GiveHint("100", exercise.ID)
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("error kind = %v, want KindPreconditionFailed (%v)", util.KindOf(err), err)
	}
}

func TestGiveHintNoHintsDefined(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Sin pistas", model.Basic, "")
	env.assign(t, student.ID, exercise.ID, model.StatusInProgress)

	_, err := env.hints.GiveHint("100", exercise.ID)
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("error kind = %v, want KindPreconditionFailed (%v)", util.KindOf(err), err)
	}
}

func TestGiveHintUnknownExercise(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")

	_, err := env.hints.GiveHint("100", 9999)
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}

func TestGiveHintUnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")

	_, err := env.hints.GiveHint("999", exercise.ID)
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}

func TestGiveHintPerStudentProgress(t *testing.T) {
	env := newTestEnv(t)
	first := env.addStudent(t, "100")
	second := env.addStudent(t, "200")
	topic := env.addTopic(t, "Ciclos")
	exercise := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.assign(t, first.ID, exercise.ID, model.StatusInProgress)
	env.assign(t, second.ID, exercise.ID, model.StatusInProgress)

	env.addHint(t, exercise.ID, 1, "primera pista")
	env.addHint(t, exercise.ID, 2, "segunda pista")

	if _, err := env.hints.GiveHint("100", exercise.ID); err != nil {
		t.Fatalf("GiveHint student 100: %v", err)
	}

	// The second student starts from the first hint regardless of what the
	// first student has already seen.
	hint, err := env.hints.GiveHint("200", exercise.ID)
	if err != nil {
		t.Fatalf("GiveHint student 200: %v", err)
	}
	if hint.HintText != "primera pista" {
		t.Errorf("student 200 first hint = %q, want %q", hint.HintText, "primera pista")
	}
}
