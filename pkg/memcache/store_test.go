package mem

import (
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := NewStore[int](time.Minute, time.Minute)

	if _, ok := s.Get("a"); ok {
		t.Fatal("empty store returned a value")
	}

	s.Set("a", 7)
	if v, ok := s.Get("a"); !ok || v != 7 {
		t.Fatalf("Get = %v, %v", v, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}

	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Error("value survived Delete")
	}
}

func TestStore_Expires(t *testing.T) {
	s := NewStore[string](20*time.Millisecond, time.Hour)
	s.Set("k", "v")

	time.Sleep(40 * time.Millisecond)

	if _, ok := s.Get("k"); ok {
		t.Error("entry did not expire")
	}
}

func TestStore_GetSlidesExpiry(t *testing.T) {
	s := NewStore[string](60*time.Millisecond, time.Hour)
	s.Set("k", "v")

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, ok := s.Get("k"); !ok {
			t.Fatalf("entry expired while in use (iteration %d)", i)
		}
	}
}

func TestStore_GetOrSet(t *testing.T) {
	s := NewStore[*int](time.Minute, time.Minute)
	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	first := s.GetOrSet("k", create)
	second := s.GetOrSet("k", create)

	if first != second {
		t.Error("GetOrSet returned different values for the same key")
	}
	if calls != 1 {
		t.Errorf("create called %d times", calls)
	}
}
