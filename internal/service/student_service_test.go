package service

import (
	"context"
	"testing"

	"tutorbot_backend/internal/util"
)

func TestCreateStudentAndLookup(t *testing.T) {
	env := newTestEnv(t)
	students := NewStudentService(env.studentRepo)

	created, err := students.CreateStudent("100", "chat-100", "Ana", "García")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	found, err := students.GetStudent("100")
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if found.ID != created.ID || found.FirstName != "Ana" {
		t.Errorf("GetStudent = %+v, want the registered student", found)
	}
}

func TestGetStudentUnknown(t *testing.T) {
	env := newTestEnv(t)
	students := NewStudentService(env.studentRepo)

	_, err := students.GetStudent("999")
	if util.KindOf(err) != util.KindNotFound {
		t.Errorf("error kind = %v, want KindNotFound (%v)", util.KindOf(err), err)
	}
}

func TestCreateStudentDuplicate(t *testing.T) {
	env := newTestEnv(t)
	students := NewStudentService(env.studentRepo)

	if _, err := students.CreateStudent("100", "chat-100", "Ana", "García"); err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	_, err := students.CreateStudent("100", "chat-100", "Ana", "García")
	if util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("error kind = %v, want KindPreconditionFailed (%v)", util.KindOf(err), err)
	}
}

func TestTopicLookupAndCreate(t *testing.T) {
	env := newTestEnv(t)
	topics := NewTopicService(env.topicRepo, nil)
	ctx := context.Background()

	if _, err := topics.Create(ctx, "Ciclos", "Estructuras de repetición"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	topic, err := topics.GetByName("Ciclos")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if topic.Description != "Estructuras de repetición" {
		t.Errorf("description = %q", topic.Description)
	}

	if _, err := topics.GetByName("Punteros"); util.KindOf(err) != util.KindNotFound {
		t.Errorf("unknown topic: error kind = %v, want KindNotFound", util.KindOf(err))
	}

	if _, err := topics.Create(ctx, "Ciclos", "duplicado"); util.KindOf(err) != util.KindPreconditionFailed {
		t.Errorf("duplicate topic: error kind = %v, want KindPreconditionFailed", util.KindOf(err))
	}

	all, err := topics.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Ciclos" {
		t.Errorf("GetAll = %+v, want the single topic", all)
	}
}
