package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: 1707480000000, Text: "Buy milk"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		task Task
	}{
		{"zero id", Task{ID: 0, Text: "x"}},
		{"blank text", Task{ID: 1, Text: "   "}},
		{"untrimmed text", Task{ID: 1, Text: " walk dog"}},
	}
	for _, tc := range cases {
		if err := tc.task.Validate(); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestValidateListDuplicateIDs(t *testing.T) {
	err := ValidateList([]Task{{ID: 1, Text: "a"}, {ID: 1, Text: "b"}})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if err := ValidateList([]Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFilterMatches(t *testing.T) {
	active := Task{ID: 1, Text: "a"}
	done := Task{ID: 2, Text: "b", Completed: true}

	if !FilterAll.Matches(active) || !FilterAll.Matches(done) {
		t.Fatal("all filter must match every task")
	}
	if !FilterActive.Matches(active) || FilterActive.Matches(done) {
		t.Fatal("active filter must match only incomplete tasks")
	}
	if FilterCompleted.Matches(active) || !FilterCompleted.Matches(done) {
		t.Fatal("completed filter must match only completed tasks")
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Active ")
	if err != nil || f != FilterActive {
		t.Fatalf("ParseFilter = %q, %v", f, err)
	}
	_, err = ParseFilter("done")
	if err == nil || !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestThemeToggleAndParse(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Fatal("toggle must flip between light and dark")
	}
	if Theme("").Toggle() != ThemeDark {
		t.Fatal("unset theme is treated as light")
	}
	_, err := ParseTheme("solarized")
	if err == nil || !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got: %v", err)
	}
}
