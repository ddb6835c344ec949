package service

import (
	"testing"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/util"
)

func TestRecommendExerciseDefaultsToBasic(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")

	basic1 := env.addExercise(t, topic.ID, "Ciclo simple", model.Basic, "")
	env.addExercise(t, topic.ID, "Ciclo anidado", model.Basic, "")
	env.addExercise(t, topic.ID, "Ciclo con acumulador", model.Intermediate, "")

	got, err := env.exercises.RecommendExercise("100", "Ciclos")
	if err != nil {
		t.Fatalf("RecommendExercise: %v", err)
	}
	if got.ID != basic1.ID {
		t.Errorf("recommended exercise %d, want %d (first Basic by id)", got.ID, basic1.ID)
	}
	if status := env.assignmentStatus(t, student.ID, got.ID); status != model.StatusInProgress {
		t.Errorf("assignment status = %q, want %q", status, model.StatusInProgress)
	}
}

func TestRecommendExerciseSkipsAssigned(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")
	topic := env.addTopic(t, "Arreglos")

	first := env.addExercise(t, topic.ID, "Sumar elementos", model.Basic, "")
	second := env.addExercise(t, topic.ID, "Buscar el máximo", model.Basic, "")

	got1, err := env.exercises.RecommendExercise("100", "Arreglos")
	if err != nil {
		t.Fatalf("first RecommendExercise: %v", err)
	}
	if got1.ID != first.ID {
		t.Fatalf("first recommendation = %d, want %d", got1.ID, first.ID)
	}

	got2, err := env.exercises.RecommendExercise("100", "Arreglos")
	if err != nil {
		t.Fatalf("second RecommendExercise: %v", err)
	}
	if got2.ID != second.ID {
		t.Errorf("second recommendation = %d, want %d", got2.ID, second.ID)
	}
}

func TestRecommendExercisePromotesAtThreshold(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Condicionales")

	for i := 0; i < 5; i++ {
		ex := env.addExercise(t, topic.ID, "Básico", model.Basic, "")
		env.assign(t, student.ID, ex.ID, model.StatusCompleted)
	}
	env.addExercise(t, topic.ID, "Básico pendiente", model.Basic, "")
	intermediate := env.addExercise(t, topic.ID, "Intermedio", model.Intermediate, "")

	got, err := env.exercises.RecommendExercise("100", "Condicionales")
	if err != nil {
		t.Fatalf("RecommendExercise: %v", err)
	}
	if got.ID != intermediate.ID {
		t.Errorf("recommendation = %q (id %d), want the Intermediate exercise (id %d)", got.Title, got.ID, intermediate.ID)
	}
}

func TestRecommendExerciseStaysAtTierBelowThreshold(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Arreglos")

	for i := 0; i < 3; i++ {
		ex := env.addExercise(t, topic.ID, "Básico", model.Basic, "")
		env.assign(t, student.ID, ex.ID, model.StatusCompleted)
	}
	for i := 0; i < 2; i++ {
		ex := env.addExercise(t, topic.ID, "Intermedio", model.Intermediate, "")
		env.assign(t, student.ID, ex.ID, model.StatusSubmitted)
	}
	env.addExercise(t, topic.ID, "Básico pendiente", model.Basic, "")
	next := env.addExercise(t, topic.ID, "Intermedio pendiente", model.Intermediate, "")

	// Highest finished tier is Intermediate with only 2 done, so the
	// recommendation stays at Intermediate and never drops back to Basic.
	got, err := env.exercises.RecommendExercise("100", "Arreglos")
	if err != nil {
		t.Fatalf("RecommendExercise: %v", err)
	}
	if got.ID != next.ID {
		t.Errorf("recommendation = %q (id %d), want %q (id %d)", got.Title, got.ID, next.Title, next.ID)
	}
}

func TestRecommendExerciseSaturatesAtAdvanced(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Métodos")

	for i := 0; i < 5; i++ {
		ex := env.addExercise(t, topic.ID, "Avanzado", model.Advanced, "")
		env.assign(t, student.ID, ex.ID, model.StatusCompleted)
	}
	remaining := env.addExercise(t, topic.ID, "Avanzado pendiente", model.Advanced, "")

	got, err := env.exercises.RecommendExercise("100", "Métodos")
	if err != nil {
		t.Fatalf("RecommendExercise: %v", err)
	}
	if got.ID != remaining.ID {
		t.Errorf("recommendation = %d, want %d (stays at Advanced)", got.ID, remaining.ID)
	}
}

func TestRecommendExerciseInProgressDoesNotCount(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Cadenas")

	for i := 0; i < 5; i++ {
		ex := env.addExercise(t, topic.ID, "Básico abierto", model.Basic, "")
		env.assign(t, student.ID, ex.ID, model.StatusInProgress)
	}
	pending := env.addExercise(t, topic.ID, "Básico pendiente", model.Basic, "")
	env.addExercise(t, topic.ID, "Intermedio", model.Intermediate, "")

	// Nothing is finished yet, so the student is still on Basic.
	got, err := env.exercises.RecommendExercise("100", "Cadenas")
	if err != nil {
		t.Fatalf("RecommendExercise: %v", err)
	}
	if got.ID != pending.ID {
		t.Errorf("recommendation = %d, want %d (Basic)", got.ID, pending.ID)
	}
}

func TestRecommendExerciseExhausted(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Variables")

	ex := env.addExercise(t, topic.ID, "Única", model.Basic, "")
	env.assign(t, student.ID, ex.ID, model.StatusInProgress)

	_, err := env.exercises.RecommendExercise("100", "Variables")
	if err == nil {
		t.Fatal("expected an error when every exercise is already assigned")
	}
	if util.KindOf(err) != util.KindExhausted {
		t.Errorf("error kind = %v, want KindExhausted (%v)", util.KindOf(err), err)
	}
}

func TestRecommendExerciseUnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	env.addTopic(t, "Variables")

	_, err := env.exercises.RecommendExercise("999", "Variables")
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}

func TestRecommendExerciseUnknownTopic(t *testing.T) {
	env := newTestEnv(t)
	env.addStudent(t, "100")

	_, err := env.exercises.RecommendExercise("100", "Punteros")
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}

func TestGetSolution(t *testing.T) {
	env := newTestEnv(t)
	topic := env.addTopic(t, "Variables")
	withSolution := env.addExercise(t, topic.ID, "Con solución", model.Basic, "int x = 1;")
	withoutSolution := env.addExercise(t, topic.ID, "Sin solución", model.Basic, "")

	solution, err := env.exercises.GetSolution(withSolution.ID)
	if err != nil {
		t.Fatalf("GetSolution: %v", err)
	}
	if solution != "int x = 1;" {
		t.Errorf("solution = %q", solution)
	}

	if _, err := env.exercises.GetSolution(withoutSolution.ID); util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("missing solution: error kind = %v, want KindPreconditionFailed", util.KindOf(err))
	}

	if _, err := env.exercises.GetSolution(9999); util.KindOf(err) != util.KindNotFound {
		t.Errorf("missing exercise: error kind = %v, want KindNotFound", util.KindOf(err))
	}
}

func TestHighestCompletedLevel(t *testing.T) {
	env := newTestEnv(t)
	student := env.addStudent(t, "100")
	topic := env.addTopic(t, "Ciclos")

	if level, err := env.exercises.HighestCompletedLevel(student.ID, topic.ID); err != nil || level != "" {
		t.Fatalf("HighestCompletedLevel with no history = (%q, %v), want empty", level, err)
	}

	basic := env.addExercise(t, topic.ID, "Básico", model.Basic, "")
	env.assign(t, student.ID, basic.ID, model.StatusCompleted)
	advanced := env.addExercise(t, topic.ID, "Avanzado", model.Advanced, "")
	env.assign(t, student.ID, advanced.ID, model.StatusInProgress)

	level, err := env.exercises.HighestCompletedLevel(student.ID, topic.ID)
	if err != nil {
		t.Fatalf("HighestCompletedLevel: %v", err)
	}
	if level != model.Basic {
		t.Errorf("level = %q, want %q (In Progress work does not count)", level, model.Basic)
	}
}

func TestCreateExerciseRejectsUnknownDifficulty(t *testing.T) {
	env := newTestEnv(t)
	env.addTopic(t, "Variables")

	_, err := env.exercises.CreateExercise("Variables", "Título", "Descripción", "Imposible", "")
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("error kind = %v, want KindPreconditionFailed", util.KindOf(err))
	}
}
