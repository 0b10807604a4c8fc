package drag

import (
	"context"
	"reflect"
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
)

type recorder struct {
	calls [][]int64
}

func (r *recorder) Reorder(order []int64) {
	r.calls = append(r.calls, order)
}

func TestStartRejectsHiddenTask(t *testing.T) {
	if _, err := Start(&recorder{}, ModeLive, []int64{1, 2}, 3); err != ErrUnknownTask {
		t.Fatalf("expected ErrUnknownTask, got: %v", err)
	}
}

func TestOverUsesMidpoint(t *testing.T) {
	cases := []struct {
		name      string
		over      int64
		upperHalf bool
		want      []int64
	}{
		{"upper half of later row", 3, true, []int64{2, 1, 3, 4}},
		{"lower half of later row", 3, false, []int64{2, 3, 1, 4}},
		{"lower half of last row", 4, false, []int64{2, 3, 4, 1}},
		{"upper half of next row is a no-op", 2, true, []int64{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		s, err := Start(&recorder{}, ModeDrop, []int64{1, 2, 3, 4}, 1)
		if err != nil {
			t.Fatalf("%s: start: %v", tc.name, err)
		}
		s.Over(tc.over, tc.upperHalf)
		if got := s.Order(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: order = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverSelfAndUnknownIgnored(t *testing.T) {
	rec := &recorder{}
	s, _ := Start(rec, ModeLive, []int64{1, 2, 3}, 2)
	if s.Over(2, true) || s.Over(9, false) {
		t.Fatal("hovering self or unknown row must not change order")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no commits, got %v", rec.calls)
	}
}

func TestLiveModeCommitsEachChange(t *testing.T) {
	rec := &recorder{}
	s, _ := Start(rec, ModeLive, []int64{1, 2, 3}, 1)
	s.Step(1)
	s.Step(1)
	s.Step(1)
	s.Drop()

	want := [][]int64{{2, 1, 3}, {2, 3, 1}}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Fatalf("commits = %v, want %v", rec.calls, want)
	}
	if s.Active() {
		t.Fatal("session should be finished after drop")
	}
}

func TestDropModeCommitsOnce(t *testing.T) {
	rec := &recorder{}
	s, _ := Start(rec, ModeDrop, []int64{1, 2, 3}, 3)
	s.Step(-1)
	s.Step(-1)
	if len(rec.calls) != 0 {
		t.Fatalf("drop mode must not commit while dragging, got %v", rec.calls)
	}
	s.Drop()
	s.Drop()
	if !reflect.DeepEqual(rec.calls, [][]int64{{3, 1, 2}}) {
		t.Fatalf("commits = %v", rec.calls)
	}
}

func TestCancelKeepsLastLiveOrder(t *testing.T) {
	rec := &recorder{}
	live, _ := Start(rec, ModeLive, []int64{1, 2, 3}, 1)
	live.Step(1)
	live.Cancel()
	if live.Commits() != 1 || live.Step(1) {
		t.Fatalf("cancelled live session: commits=%d", live.Commits())
	}

	dropRec := &recorder{}
	deferred, _ := Start(dropRec, ModeDrop, []int64{1, 2, 3}, 1)
	deferred.Step(1)
	deferred.Cancel()
	deferred.Drop()
	if len(dropRec.calls) != 0 {
		t.Fatalf("cancelled drop session must not commit, got %v", dropRec.calls)
	}
}

func TestDragUnderFilterMergesIntoStore(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	repo := storage.NewTaskRepository(kv, "", nil)
	seed := []model.Task{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Completed: true},
		{ID: 3, Text: "c"},
	}
	if err := repo.Save(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	todos, err := store.New(ctx, repo)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	todos.SetFilter(model.FilterActive)

	visible := []int64{}
	for _, task := range todos.VisibleTasks() {
		visible = append(visible, task.ID)
	}
	s, err := Start(todos, ModeLive, visible, 3)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Over(1, true)
	s.Drop()

	got := []int64{}
	for _, task := range todos.Tasks() {
		got = append(got, task.ID)
	}
	if !reflect.DeepEqual(got, []int64{2, 3, 1}) {
		t.Fatalf("full order = %v, want hidden task first then [3 1]", got)
	}
	reloaded, _ := repo.Load(ctx)
	if len(reloaded) != 3 || reloaded[0].ID != 2 {
		t.Fatalf("persisted order = %#v", reloaded)
	}
}
