package services

import (
	"fmt"

	resp "zenjourney/internal/models/response_models"
)

// PlanView is everything the plan template needs to render one screen state.
// At most one of Loading, Error and Plan is set.
type PlanView struct {
	Loading bool
	Error   string
	Plan    *PlanBody
}

type PlanBody struct {
	Destination   string
	EstimatedCost string
	Days          []DayView
	Hotels        *HotelSection
	Tips          *resp.GeneralTravelTips
	Pager         Pager
}

type DayView struct {
	Label      string
	Weather    string
	Breakfast  string
	Dinner     string
	MustVisit  resp.MustVisit
	Event      EventView
	TravelTips *resp.DayTravelTips

	// Older day shape; set only when TravelTips is nil.
	TravelDistance  string
	HotelSuggestion string
}

// EventView is a local event resolved to either the structured or the label shape.
type EventView struct {
	Name      string
	Type      string
	Duration  string
	LabelOnly bool
}

type HotelSection struct {
	NamesOnly bool
	Hotels    []HotelView
}

type HotelView struct {
	Name      string
	Rating    string
	Price     string
	Amenities []string
	Location  string
}

type Pager struct {
	Current    int
	TotalPages int
	Pages      []int
	Prev       int
	Next       int
}

func (p Pager) HasPrev() bool { return p.Prev > 0 }
func (p Pager) HasNext() bool { return p.Next > 0 }

// BuildDisplay derives the rendered view from a screen state.
// Idle renders nothing. A loading screen never shows a previous plan.
func BuildDisplay(state PlanState) *PlanView {
	switch s := state.(type) {
	case LoadingState:
		return &PlanView{Loading: true}
	case FailedState:
		return &PlanView{Error: s.Message}
	case LoadedState:
		if s.Plan == nil {
			return nil
		}
		return &PlanView{Plan: buildBody(s.Plan, s.Page)}
	default:
		return nil
	}
}

// FormatCost renders an amount in USD with two decimals.
func FormatCost(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func buildBody(plan *resp.TravelPlan, page int) *PlanBody {
	p := Paginate(plan.Itinerary, page)

	days := make([]DayView, 0, len(p.Entries))
	for _, entry := range p.Entries {
		days = append(days, buildDay(entry))
	}

	return &PlanBody{
		Destination:   plan.Destination,
		EstimatedCost: FormatCost(plan.EstimatedCost),
		Days:          days,
		Hotels:        buildHotels(plan.HotelSuggestions),
		Tips:          plan.TravelTips,
		Pager:         buildPager(p),
	}
}

func buildDay(entry DayEntry) DayView {
	d := entry.Plan
	weather := d.Weather
	if weather == "" {
		weather = resp.DefaultWeather
	}

	view := DayView{
		Label:     entry.Key,
		Weather:   weather,
		Breakfast: d.Breakfast,
		Dinner:    d.Dinner,
		MustVisit: d.MustVisit,
		Event: EventView{
			Name:      d.LocalEvent.Name,
			Type:      d.LocalEvent.Type,
			Duration:  d.LocalEvent.Duration,
			LabelOnly: d.LocalEvent.Legacy,
		},
		TravelTips: d.TravelTips,
	}
	if d.TravelTips == nil {
		view.TravelDistance = d.TravelDistance
		view.HotelSuggestion = d.HotelSuggestion
	}
	return view
}

func buildHotels(h resp.HotelSuggestions) *HotelSection {
	if h.Len() == 0 {
		return nil
	}

	section := &HotelSection{NamesOnly: h.Shape == resp.HotelShapeLegacy}
	for _, hotel := range h.Items {
		v := HotelView{Name: hotel.Name}
		if !section.NamesOnly {
			v.Rating = fmt.Sprintf("%.1f", hotel.Rating)
			v.Price = FormatCost(hotel.PricePerNight)
			v.Amenities = hotel.Amenities
			v.Location = hotel.Location
		}
		section.Hotels = append(section.Hotels, v)
	}
	return section
}

func buildPager(p Page) Pager {
	pager := Pager{Current: p.Number, TotalPages: p.TotalPages}
	for i := 1; i <= p.TotalPages; i++ {
		pager.Pages = append(pager.Pages, i)
	}
	if p.Number > 1 {
		pager.Prev = p.Number - 1
	}
	if p.Number < p.TotalPages {
		pager.Next = p.Number + 1
	}
	return pager
}
