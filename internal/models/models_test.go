package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// ============================================================================
// Priority Tests
// ============================================================================

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"High", PriorityHigh, false},
		{" MEDIUM ", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"INVALID_PRIORITY", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("ParsePriority(%q): expected ErrInvalidPriority, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPriority_UnmarshalRejectsUnknownToken(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":1,"title":"x","priority":"urgent"}`), &task)
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestPriority_MarshalWritesLowercaseToken(t *testing.T) {
	data, err := json.Marshal(struct {
		P Priority `json:"p"`
	}{PriorityHigh})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"p":"high"}` {
		t.Errorf("unexpected encoding %s", data)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewTask(t *testing.T) {
	task, err := NewTask("Buy milk", 3, "", "")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	if task.ID != 0 {
		t.Errorf("new task should be unassigned, got id %d", task.ID)
	}
	if task.Priority != DefaultPriority {
		t.Errorf("expected default priority, got %q", task.Priority)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match on creation")
	}

	if _, err := NewTask("   ", 0, "", PriorityLow); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestNewCategory(t *testing.T) {
	if _, err := NewCategory("", "desc"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	c, err := NewCategory("Work", "work stuff")
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	if !c.SameName("WORK") {
		t.Error("SameName should ignore case")
	}
}

func TestTask_MutatorsBumpUpdatedAt(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{ID: 1, Title: "t", Priority: PriorityLow, CreatedAt: old, UpdatedAt: old}

	task.MarkCompleted()
	if !task.Completed || !task.UpdatedAt.After(old) {
		t.Error("MarkCompleted should set Completed and bump UpdatedAt")
	}

	task.UpdatedAt = old
	task.MoveToCategory(UncategorizedID)
	if !task.IsUncategorized() || !task.UpdatedAt.After(old) {
		t.Error("MoveToCategory should move and bump UpdatedAt")
	}

	if err := task.UpdateTitle(""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

// ============================================================================
// Snapshot Validation Tests
// ============================================================================

func validSnapshot() *Snapshot {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSnapshot()
	s.Categories = []Category{
		{ID: 1, Name: "Work", CreatedAt: ts},
		{ID: 2, Name: "Personal", CreatedAt: ts},
	}
	s.Tasks = []Task{
		{ID: 1, Title: "Report", CategoryID: 1, Priority: PriorityHigh, CreatedAt: ts, UpdatedAt: ts},
		{ID: 2, Title: "Orphan", CategoryID: UncategorizedID, Priority: PriorityLow, CreatedAt: ts, UpdatedAt: ts},
	}
	return s
}

func TestSnapshot_Validate(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}
	if err := NewSnapshot().Validate(); err != nil {
		t.Fatalf("empty snapshot rejected: %v", err)
	}
}

func TestSnapshot_Validate_DanglingCategory(t *testing.T) {
	s := validSnapshot()
	s.Tasks[0].CategoryID = 5

	var target *InvalidTaskCategoryError
	if err := s.Validate(); !errors.As(err, &target) {
		t.Fatalf("expected InvalidTaskCategoryError, got %v", err)
	}
	if target.TaskID != 1 || target.CategoryID != 5 {
		t.Errorf("unexpected error detail %+v", target)
	}
}

func TestSnapshot_Validate_DuplicateName(t *testing.T) {
	s := validSnapshot()
	s.Categories = append(s.Categories, Category{ID: 3, Name: "work"})

	var target *DuplicateCategoryError
	if err := s.Validate(); !errors.As(err, &target) {
		t.Fatalf("expected DuplicateCategoryError, got %v", err)
	}
	if target.Name != "work" {
		t.Errorf("expected duplicate name 'work', got %q", target.Name)
	}
}

func TestSnapshot_Validate_ReservedAndDuplicateIDs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		want   error
	}{
		{"category id 0", func(s *Snapshot) { s.Categories[0].ID = 0 }, ErrReservedID},
		{"task id 0", func(s *Snapshot) { s.Tasks[0].ID = 0 }, ErrReservedID},
		{"duplicate task id", func(s *Snapshot) { s.Tasks[1].ID = 1 }, ErrDuplicateID},
		{"blank title", func(s *Snapshot) { s.Tasks[0].Title = " " }, ErrEmptyTitle},
		{"bad priority", func(s *Snapshot) { s.Tasks[0].Priority = "urgent" }, ErrInvalidPriority},
		{"negative lifespan", func(s *Snapshot) { days := -1; s.Config.DeletedTaskLifespan = &days }, ErrInvalidLifespan},
		{"bad default priority", func(s *Snapshot) { s.Config.DefaultPriority = "urgent" }, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSnapshot_Clone(t *testing.T) {
	s := validSnapshot()
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	s.Tasks[0].DueDate = &due
	current := 1
	s.CurrentCategory = &current

	c := s.Clone()
	c.Tasks[0].Title = "changed"
	*c.Tasks[0].DueDate = due.Add(time.Hour)
	*c.CurrentCategory = 2

	if s.Tasks[0].Title != "Report" || !s.Tasks[0].DueDate.Equal(due) || *s.CurrentCategory != 1 {
		t.Error("Clone should not share state with the original")
	}
}
