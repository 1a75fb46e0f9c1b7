package store_test

import (
	"errors"
	"reflect"
	"testing"

	"bandroom/store"
)

func concert(location string) map[string]any {
	return map[string]any{"location": location, "date": "2025-05-01"}
}

func listAt(t *testing.T, s store.Store, key string) []any {
	t.Helper()
	v, err := s.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("expected list at %q, got %T", key, v)
	}
	return list
}

func TestAppend(t *testing.T) {
	s := store.NewMemoryStore()

	if err := store.Append(s, store.KeyConcerts, concert("Venue A")); err != nil {
		t.Fatal(err)
	}
	list := listAt(t, s, store.KeyConcerts)
	if len(list) != 1 {
		t.Fatalf("expected 1 element, got %d", len(list))
	}

	if err := store.Append(s, store.KeyConcerts, concert("Venue B")); err != nil {
		t.Fatal(err)
	}
	list = listAt(t, s, store.KeyConcerts)
	if len(list) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(list))
	}
	last, ok := list[1].(map[string]any)
	if !ok || last["location"] != "Venue B" {
		t.Fatalf("expected Venue B last, got %v", list[1])
	}
}

func TestRemoveAt(t *testing.T) {
	s := store.NewMemoryStore()
	for _, loc := range []string{"Venue A", "Venue B", "Venue C"} {
		if err := store.Append(s, store.KeyConcerts, concert(loc)); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.RemoveAt(s, store.KeyConcerts, 1)
	if err != nil {
		t.Fatal(err)
	}
	if removed.(map[string]any)["location"] != "Venue B" {
		t.Fatalf("expected Venue B removed, got %v", removed)
	}

	list := listAt(t, s, store.KeyConcerts)
	var locations []string
	for _, e := range list {
		locations = append(locations, e.(map[string]any)["location"].(string))
	}
	if !reflect.DeepEqual(locations, []string{"Venue A", "Venue C"}) {
		t.Fatalf("expected remaining order preserved, got %v", locations)
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	s := store.NewMemoryStore()
	if err := store.Append(s, store.KeyLinks, map[string]any{"name": "setlist"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(s, store.KeyLinks, map[string]any{"name": "rehearsal"}); err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 2, 5} {
		_, err := store.RemoveAt(s, store.KeyLinks, index)
		if !errors.Is(err, store.ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
		if got := len(listAt(t, s, store.KeyLinks)); got != 2 {
			t.Fatalf("index %d: list mutated, length %d", index, got)
		}
	}
}

func TestRemoveAtAbsentKey(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := store.RemoveAt(s, store.KeyConcerts, 0)
	if !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange on absent list, got %v", err)
	}
	if v, _ := s.Get(store.KeyConcerts); v != nil {
		t.Fatalf("expected no write on failed removal, got %v", v)
	}
}
