package services

import (
	"sort"

	"github.com/samber/lo"

	resp "zenjourney/internal/models/response_models"
)

// PageSize is the number of itinerary days shown per page.
const PageSize = 3

type DayEntry struct {
	Key  string
	Plan resp.DailyPlan
}

type Page struct {
	Number     int
	TotalPages int
	Entries    []DayEntry
}

// SortedDays orders itinerary entries by the day number embedded in their key.
// Keys without a number follow the numbered ones in lexical order.
func SortedDays(itinerary map[string]resp.DailyPlan) []DayEntry {
	entries := lo.MapToSlice(itinerary, func(key string, plan resp.DailyPlan) DayEntry {
		return DayEntry{Key: key, Plan: plan}
	})

	sort.Slice(entries, func(i, j int) bool {
		ni, okI := resp.DayNumber(entries[i].Key)
		nj, okJ := resp.DayNumber(entries[j].Key)
		switch {
		case okI && okJ && ni != nj:
			return ni < nj
		case okI != okJ:
			return okI
		default:
			return entries[i].Key < entries[j].Key
		}
	})

	return entries
}

func TotalPages(dayCount, size int) int {
	if dayCount <= 0 || size <= 0 {
		return 0
	}
	return (dayCount + size - 1) / size
}

// ClampPage keeps page inside [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of the itinerary, clamping out-of-range pages.
func Paginate(itinerary map[string]resp.DailyPlan, page int) Page {
	days := SortedDays(itinerary)
	total := TotalPages(len(days), PageSize)
	page = ClampPage(page, total)

	chunks := lo.Chunk(days, PageSize)
	var entries []DayEntry
	if page-1 < len(chunks) {
		entries = chunks[page-1]
	}

	return Page{
		Number:     page,
		TotalPages: total,
		Entries:    entries,
	}
}
