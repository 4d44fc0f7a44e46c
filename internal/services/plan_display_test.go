package services

import (
	"encoding/json"
	"reflect"
	"testing"

	resp "zenjourney/internal/models/response_models"
)

func decodePlan(t *testing.T, raw string) *resp.TravelPlan {
	t.Helper()
	var plan resp.TravelPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &plan
}

func TestBuildDisplay_StatePrecedence(t *testing.T) {
	plan := planWithDays("Rome", 2)

	if v := BuildDisplay(IdleState{}); v != nil {
		t.Errorf("idle view = %+v, want nil", v)
	}

	loading := BuildDisplay(LoadingState{})
	if loading == nil || !loading.Loading || loading.Plan != nil || loading.Error != "" {
		t.Errorf("loading view = %+v", loading)
	}

	failed := BuildDisplay(FailedState{Message: "boom"})
	if failed == nil || failed.Error != "boom" || failed.Plan != nil || failed.Loading {
		t.Errorf("failed view = %+v", failed)
	}

	loaded := BuildDisplay(LoadedState{Plan: plan, Page: 1})
	if loaded == nil || loaded.Plan == nil || loaded.Loading || loaded.Error != "" {
		t.Fatalf("loaded view = %+v", loaded)
	}
	if loaded.Plan.Destination != "Rome" {
		t.Errorf("destination = %q", loaded.Plan.Destination)
	}
}

func TestBuildDisplay_StructuredPlan(t *testing.T) {
	plan := decodePlan(t, `{
		"destination": "Kyoto",
		"estimated_cost": 1234.5,
		"itinerary": {
			"Day 2": {"weather": "Rain", "local_event": {"name": "Gion", "type": "festival", "duration": "3h"},
				"travel_tips": {"morning_activity": "Temple", "transport": "Bus", "local_customs": "Bow"}},
			"Day 1": {"local_event": "Tea ceremony", "travel_distance": "5km", "hotel_suggestion": "Ryokan"}
		},
		"hotel_suggestions": [{"name": "Hotel A", "rating": 4.5, "price_per_night": 210, "amenities": ["wifi"], "location": "Center"}],
		"travel_tips": {"currency": "JPY", "emergency_numbers": {"police": "110"}}
	}`)

	v := BuildDisplay(LoadedState{Plan: plan, Page: 1})
	body := v.Plan

	if body.EstimatedCost != "$1234.50" {
		t.Errorf("cost = %q", body.EstimatedCost)
	}
	if len(body.Days) != 2 || body.Days[0].Label != "Day 1" || body.Days[1].Label != "Day 2" {
		t.Fatalf("days = %+v", body.Days)
	}

	day1 := body.Days[0]
	if day1.Weather != resp.DefaultWeather {
		t.Errorf("day 1 weather = %q", day1.Weather)
	}
	if !day1.Event.LabelOnly || day1.Event.Name != "Tea ceremony" {
		t.Errorf("day 1 event = %+v", day1.Event)
	}
	if day1.TravelDistance != "5km" || day1.HotelSuggestion != "Ryokan" || day1.TravelTips != nil {
		t.Errorf("day 1 legacy fields = %+v", day1)
	}

	day2 := body.Days[1]
	if day2.Event.LabelOnly || day2.Event.Type != "festival" {
		t.Errorf("day 2 event = %+v", day2.Event)
	}
	if day2.TravelTips == nil || day2.TravelTips.Transport != "Bus" {
		t.Errorf("day 2 tips = %+v", day2.TravelTips)
	}

	if body.Hotels == nil || body.Hotels.NamesOnly || len(body.Hotels.Hotels) != 1 {
		t.Fatalf("hotels = %+v", body.Hotels)
	}
	if h := body.Hotels.Hotels[0]; h.Price != "$210.00" || h.Rating != "4.5" {
		t.Errorf("hotel = %+v", h)
	}
	if body.Tips == nil || body.Tips.EmergencyNumbers.Police != "110" {
		t.Errorf("tips = %+v", body.Tips)
	}
}

func TestBuildDisplay_OptionalSections(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantHotels bool
		namesOnly  bool
		wantTips   bool
	}{
		{"empty hotels no tips", `{"destination":"A","itinerary":{},"hotel_suggestions":[]}`, false, false, false},
		{"missing hotels", `{"destination":"A","itinerary":{}}`, false, false, false},
		{"legacy hotel names", `{"destination":"A","itinerary":{},"hotel_suggestions":["X","Y"]}`, true, true, false},
		{"tips only", `{"destination":"A","itinerary":{},"travel_tips":{"language":"Greek"}}`, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := BuildDisplay(LoadedState{Plan: decodePlan(t, tt.raw), Page: 1}).Plan
			if (body.Hotels != nil) != tt.wantHotels {
				t.Fatalf("hotels = %+v", body.Hotels)
			}
			if body.Hotels != nil && body.Hotels.NamesOnly != tt.namesOnly {
				t.Errorf("NamesOnly = %v", body.Hotels.NamesOnly)
			}
			if (body.Tips != nil) != tt.wantTips {
				t.Errorf("tips = %+v", body.Tips)
			}
			if body.EstimatedCost != "$0.00" {
				t.Errorf("cost = %q", body.EstimatedCost)
			}
		})
	}
}

func TestBuildDisplay_Pager(t *testing.T) {
	plan := planWithDays("Rome", 7)
	tests := []struct {
		page      int
		want      Pager
		dayLabels []string
	}{
		{1, Pager{Current: 1, TotalPages: 3, Pages: []int{1, 2, 3}, Next: 2}, []string{"Day 1", "Day 2", "Day 3"}},
		{2, Pager{Current: 2, TotalPages: 3, Pages: []int{1, 2, 3}, Prev: 1, Next: 3}, []string{"Day 4", "Day 5", "Day 6"}},
		{3, Pager{Current: 3, TotalPages: 3, Pages: []int{1, 2, 3}, Prev: 2}, []string{"Day 7"}},
	}

	for _, tt := range tests {
		body := BuildDisplay(LoadedState{Plan: plan, Page: tt.page}).Plan
		if !reflect.DeepEqual(body.Pager, tt.want) {
			t.Errorf("page %d: pager = %+v, want %+v", tt.page, body.Pager, tt.want)
		}
		var labels []string
		for _, d := range body.Days {
			labels = append(labels, d.Label)
		}
		if !reflect.DeepEqual(labels, tt.dayLabels) {
			t.Errorf("page %d: days = %v, want %v", tt.page, labels, tt.dayLabels)
		}
	}
}
