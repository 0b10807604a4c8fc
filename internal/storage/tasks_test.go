package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestTaskRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(setupStore(t), "", nil)

	want := []model.Task{
		{ID: 1707480000000, Text: "Buy milk", Completed: true},
		{ID: 1707480000001, Text: "Walk dog"},
		{ID: 1707480000002, Text: `<b>not markup</b>`},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestTaskRepositoryMissingKeyIsEmpty(t *testing.T) {
	repo := NewTaskRepository(NewMemoryStore(), "", nil)
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestTaskRepositoryMalformedPayloadIsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{{`,
		"null":            `null`,
		"object":          `{"id":1}`,
		"list of scalars": `[1, 2]`,
		"truncated list":  `[{"id":1,"text":"a"`,
	}
	for name, payload := range cases {
		kv := NewMemoryStore()
		if err := kv.Put(context.Background(), DefaultTodosKey, payload); err != nil {
			t.Fatalf("%s: seed: %v", name, err)
		}
		got, err := NewTaskRepository(kv, "", nil).Load(context.Background())
		if err != nil {
			t.Fatalf("%s: load returned error: %v", name, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s: expected empty list, got %#v", name, got)
		}
	}
}

func TestTaskRepositorySaveEmptyWritesArray(t *testing.T) {
	kv := NewMemoryStore()
	repo := NewTaskRepository(kv, "custom", nil)
	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := kv.Get(context.Background(), "custom")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected [] payload, got %q", raw)
	}
}

func TestTaskRepositorySaveFailureIsWrapped(t *testing.T) {
	boom := errors.New("quota exceeded")
	kv := NewMemoryStore()
	kv.FailPut = boom
	err := NewTaskRepository(kv, "", nil).Save(context.Background(), []model.Task{{ID: 1, Text: "a"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped put error, got: %v", err)
	}
}

func TestTaskRepositoryKeepsUsableRecords(t *testing.T) {
	payload := `[
		{"id":1,"text":"a","completed":true},
		{"id":"2","text":"string id","completed":false},
		{"id":3,"text":"   ","completed":false},
		{"id":1,"text":"dup","completed":false},
		{"id":4,"text":"no flag"},
		{"id":1.5,"text":"fraction","completed":false},
		{"id":9,"text":"last","completed":false}
	]`
	kv := NewMemoryStore()
	if err := kv.Put(context.Background(), DefaultTodosKey, payload); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := NewTaskRepository(kv, "", nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.Task{
		{ID: 1, Text: "a", Completed: true},
		{ID: 10, Text: "dup"},
		{ID: 4, Text: "no flag"},
		{ID: 9, Text: "last"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected repaired list:\n got %#v\nwant %#v", got, want)
	}
	if err := model.ValidateList(got); err != nil {
		t.Fatalf("repaired list is invalid: %v", err)
	}
}

func TestDecodeTasksReportsEachRepair(t *testing.T) {
	_, issues, err := DecodeTasks([]byte(`[{"id":1,"text":"a"},{"id":1,"text":"b"},{"text":"no id"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
}

func TestEncodeTasksRejectsDuplicateIDs(t *testing.T) {
	if _, err := EncodeTasks([]model.Task{{ID: 1, Text: "a"}, {ID: 1, Text: "b"}}); err == nil {
		t.Fatal("expected duplicate ids to be rejected")
	}
}

func TestDecodeTasksTrimsText(t *testing.T) {
	got, _, err := DecodeTasks([]byte(`[{"id":5,"text":"  padded  ","completed":false}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0].Text != "padded" {
		t.Fatalf("expected trimmed text, got %q", got[0].Text)
	}
}
