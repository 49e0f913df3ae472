package taskstore

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
)

func frozenClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestStore(t *testing.T, titles ...string) *Store {
	t.Helper()
	s := New(WithClock(frozenClock(1_700_000_000_000)))
	for _, title := range titles {
		if _, err := s.Add(title); err != nil {
			t.Fatalf("Add(%q) err = %v, want nil", title, err)
		}
	}
	return s
}

func TestStore_Add_AppendsPendingTask(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add() err = %v, want nil", err)
	}
	if got.Title != "Buy milk" || got.Done {
		t.Fatalf("Add() returned %+v", got)
	}
	want := []model.Task{{ID: got.ID, Title: "Buy milk", Done: false}}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Fatalf("Tasks() = %+v, want %+v", s.Tasks(), want)
	}
}

func TestStore_Add_RejectsDuplicateTitle(t *testing.T) {
	s := newTestStore(t, "Buy milk")
	before := s.Tasks()

	_, err := s.Add("Buy milk")
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("Add() err = %v, want ErrDuplicateTitle", err)
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Fatalf("collection changed after rejected add: %+v", s.Tasks())
	}
}

func TestStore_Add_TitleMatchIsExact(t *testing.T) {
	s := newTestStore(t, "Buy milk")

	for _, title := range []string{"buy milk", "Buy milk ", " Buy milk"} {
		if _, err := s.Add(title); err != nil {
			t.Fatalf("Add(%q) err = %v, want nil", title, err)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}

func TestStore_Add_NeverProducesDuplicateTitles(t *testing.T) {
	s := newTestStore(t)
	seq := []string{"a", "b", "a", "c", "b", "b", "d", "a"}
	for _, title := range seq {
		_, _ = s.Add(title)
	}

	seen := map[string]bool{}
	for _, tk := range s.Tasks() {
		if seen[tk.Title] {
			t.Fatalf("duplicate title %q in %+v", tk.Title, s.Tasks())
		}
		seen[tk.Title] = true
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}

func TestStore_IDsUniqueUnderFrozenClock(t *testing.T) {
	s := newTestStore(t, "one", "two", "three")

	tasks := s.Tasks()
	for i := 1; i < len(tasks); i++ {
		if tasks[i].ID <= tasks[i-1].ID {
			t.Fatalf("ids not increasing: %+v", tasks)
		}
	}
	if tasks[0].ID != 1_700_000_000_000 {
		t.Fatalf("first id = %d, want clock millis", tasks[0].ID)
	}
}

func TestStore_IDsSurviveClockGoingBackwards(t *testing.T) {
	ms := int64(5000)
	s := New(WithClock(func() time.Time { return time.UnixMilli(ms) }))

	a, _ := s.Add("a")
	ms = 1000
	b, _ := s.Add("b")
	if b.ID <= a.ID {
		t.Fatalf("b.ID = %d, want > %d", b.ID, a.ID)
	}
}

func TestStore_ToggleDone(t *testing.T) {
	s := newTestStore(t, "x", "y")
	x := s.Tasks()[0]

	if !s.ToggleDone(x.ID) {
		t.Fatal("ToggleDone() = false, want true")
	}
	got, _ := s.Get(x.ID)
	if !got.Done {
		t.Fatal("first toggle: Done = false, want true")
	}

	s.ToggleDone(x.ID)
	got, _ = s.Get(x.ID)
	if got.Done {
		t.Fatal("second toggle: Done = true, want false")
	}
	if other := s.Tasks()[1]; other.Done || other.Title != "y" {
		t.Fatalf("other task touched: %+v", other)
	}
}

func TestStore_Rename_ChangesTitleOnly(t *testing.T) {
	s := newTestStore(t, "a", "b", "c")
	s.ToggleDone(s.Tasks()[1].ID)
	before := s.Tasks()

	if !s.Rename(before[1].ID, "bee") {
		t.Fatal("Rename() = false, want true")
	}
	after := s.Tasks()
	want := slicesWith(before, 1, func(t *model.Task) { t.Title = "bee" })
	if !reflect.DeepEqual(after, want) {
		t.Fatalf("Tasks() = %+v, want %+v", after, want)
	}
}

// Rename does not re-check uniqueness, unlike Add.
func TestStore_Rename_AllowsDuplicateAndEmptyTitles(t *testing.T) {
	s := newTestStore(t, "a", "b")
	b := s.Tasks()[1]

	s.Rename(b.ID, "a")
	if got, _ := s.Get(b.ID); got.Title != "a" {
		t.Fatalf("Title = %q, want %q", got.Title, "a")
	}
	s.Rename(b.ID, "")
	if got, _ := s.Get(b.ID); got.Title != "" {
		t.Fatalf("Title = %q, want empty", got.Title)
	}
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t, "a", "b", "c")
	tasks := s.Tasks()

	if !s.Remove(tasks[1].ID) {
		t.Fatal("Remove() = false, want true")
	}
	want := []model.Task{tasks[0], tasks[2]}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Fatalf("Tasks() = %+v, want %+v", s.Tasks(), want)
	}
}

func TestStore_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t, "a", "b")
	before := s.Tasks()
	const missing = int64(42)

	tests := []struct {
		name string
		op   func() bool
	}{
		{"toggle", func() bool { return s.ToggleDone(missing) }},
		{"rename", func() bool { return s.Rename(missing, "zzz") }},
		{"remove", func() bool { return s.Remove(missing) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.op() {
				t.Fatalf("%s(missing) = true, want false", tt.name)
			}
			if !reflect.DeepEqual(s.Tasks(), before) {
				t.Fatalf("collection changed: %+v", s.Tasks())
			}
		})
	}
}

func TestStore_HandedOutSliceIsNotMutated(t *testing.T) {
	s := newTestStore(t, "a")
	snapshot := s.Tasks()
	id := snapshot[0].ID

	s.ToggleDone(id)
	s.Rename(id, "renamed")
	if snapshot[0].Done || snapshot[0].Title != "a" {
		t.Fatalf("snapshot mutated: %+v", snapshot[0])
	}
}

func slicesWith(in []model.Task, i int, fn func(*model.Task)) []model.Task {
	out := append([]model.Task(nil), in...)
	fn(&out[i])
	return out
}
