package services

import (
	"fmt"
	"math/rand"
	"testing"

	resp "zenjourney/internal/models/response_models"
)

func itineraryOf(n int) map[string]resp.DailyPlan {
	it := make(map[string]resp.DailyPlan, n)
	for i := 1; i <= n; i++ {
		it[fmt.Sprintf("Day %d", i)] = resp.DailyPlan{Weather: fmt.Sprintf("w%d", i)}
	}
	return it
}

func TestPaginate_CoversEveryDayOnceInOrder(t *testing.T) {
	for n := 0; n <= 10; n++ {
		t.Run(fmt.Sprintf("%d days", n), func(t *testing.T) {
			it := itineraryOf(n)
			total := TotalPages(n, PageSize)
			if want := (n + 2) / 3; total != want {
				t.Fatalf("TotalPages = %d, want %d", total, want)
			}

			var seen []string
			for p := 1; p <= total; p++ {
				page := Paginate(it, p)
				if page.Number != p {
					t.Errorf("page.Number = %d, want %d", page.Number, p)
				}
				if len(page.Entries) == 0 || len(page.Entries) > PageSize {
					t.Errorf("page %d has %d entries", p, len(page.Entries))
				}
				for _, e := range page.Entries {
					seen = append(seen, e.Key)
				}
			}

			if len(seen) != n {
				t.Fatalf("saw %d days, want %d", len(seen), n)
			}
			for i, key := range seen {
				if want := fmt.Sprintf("Day %d", i+1); key != want {
					t.Errorf("position %d = %q, want %q", i, key, want)
				}
			}
		})
	}
}

func TestSortedDays_NumericNotLexical(t *testing.T) {
	it := map[string]resp.DailyPlan{
		"Day 10":  {},
		"Day 2":   {},
		"Day 1":   {},
		"Arrival": {},
		"Day 9":   {},
	}

	got := SortedDays(it)
	want := []string{"Day 1", "Day 2", "Day 9", "Day 10", "Arrival"}
	for i, e := range got {
		if e.Key != want[i] {
			t.Errorf("position %d = %q, want %q", i, e.Key, want[i])
		}
	}
}

func TestSortedDays_IgnoresMapOrder(t *testing.T) {
	keys := []string{"Day 4", "Day 1", "Day 3", "Day 2", "Day 5"}
	for trial := 0; trial < 5; trial++ {
		rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		it := make(map[string]resp.DailyPlan)
		for _, k := range keys {
			it[k] = resp.DailyPlan{}
		}
		got := SortedDays(it)
		for i, e := range got {
			if want := fmt.Sprintf("Day %d", i+1); e.Key != want {
				t.Fatalf("trial %d position %d = %q, want %q", trial, i, e.Key, want)
			}
		}
	}
}

func TestPaginate_ClampsPage(t *testing.T) {
	it := itineraryOf(7) // 3 pages

	tests := []struct {
		name      string
		requested int
		want      int
		firstKey  string
	}{
		{"below range", 0, 1, "Day 1"},
		{"negative", -4, 1, "Day 1"},
		{"in range", 2, 2, "Day 4"},
		{"last", 3, 3, "Day 7"},
		{"above range", 9, 3, "Day 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(it, tt.requested)
			if page.Number != tt.want {
				t.Errorf("Number = %d, want %d", page.Number, tt.want)
			}
			if page.TotalPages != 3 {
				t.Errorf("TotalPages = %d, want 3", page.TotalPages)
			}
			if page.Entries[0].Key != tt.firstKey {
				t.Errorf("first key = %q, want %q", page.Entries[0].Key, tt.firstKey)
			}
		})
	}
}

func TestPaginate_EmptyItinerary(t *testing.T) {
	page := Paginate(map[string]resp.DailyPlan{}, 3)
	if page.Number != 1 || page.TotalPages != 0 || len(page.Entries) != 0 {
		t.Errorf("page = %+v", page)
	}
}
