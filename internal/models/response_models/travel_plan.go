package response_models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultWeather is shown when a day carries no weather label.
const DefaultWeather = "N/A"

// TravelPlan is the document returned by the planning service.
// The structured shapes are canonical; older string shapes are adapted while decoding.
type TravelPlan struct {
	Destination      string               `json:"destination"`
	Itinerary        map[string]DailyPlan `json:"itinerary"`
	EstimatedCost    float64              `json:"estimated_cost"`
	HotelSuggestions HotelSuggestions     `json:"hotel_suggestions"`
	TravelTips       *GeneralTravelTips   `json:"travel_tips,omitempty"`
}

type DailyPlan struct {
	Weather    string     `json:"weather"`
	Breakfast  string     `json:"breakfast"`
	MustVisit  MustVisit  `json:"must_visit"`
	LocalEvent LocalEvent `json:"local_event"`
	Dinner     string     `json:"dinner"`

	// Older responses carry these two instead of TravelTips.
	HotelSuggestion string `json:"hotel_suggestion,omitempty"`
	TravelDistance  string `json:"travel_distance,omitempty"`

	TravelTips *DayTravelTips `json:"travel_tips,omitempty"`
}

type MustVisit struct {
	Attraction      string `json:"attraction"`
	CrowdInfo       string `json:"crowd_info"`
	RecommendedTime string `json:"recommended_time"`
}

// LocalEvent is {name, type, duration}. A bare string decodes into Name with Legacy set.
type LocalEvent struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Legacy   bool   `json:"-"`
}

type DayTravelTips struct {
	MorningActivity string `json:"morning_activity"`
	Transport       string `json:"transport"`
	LocalCustoms    string `json:"local_customs"`
}

type HotelSuggestion struct {
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
}

// HotelShape records which wire shape a hotel list was decoded from.
type HotelShape int

const (
	HotelShapeStructured HotelShape = iota
	HotelShapeLegacy
)

// HotelSuggestions is an ordered hotel list together with its decoded shape.
type HotelSuggestions struct {
	Shape HotelShape
	Items []HotelSuggestion
}

type GeneralTravelTips struct {
	BestTimeToVisit     string           `json:"best_time_to_visit"`
	LocalTransportation string           `json:"local_transportation"`
	Currency            string           `json:"currency"`
	Language            string           `json:"language"`
	EmergencyNumbers    EmergencyNumbers `json:"emergency_numbers"`
}

type EmergencyNumbers struct {
	Police          string `json:"police"`
	Ambulance       string `json:"ambulance"`
	TouristHelpline string `json:"tourist_helpline"`
}

var (
	errMissingDestination = errors.New("destination is empty")
	errMissingItinerary   = errors.New("itinerary is missing")
	errNegativeCost       = errors.New("estimated_cost is negative")
	errMixedHotelShapes   = errors.New("hotel_suggestions mixes strings and objects")
)

// Validate rejects documents that decoded but violate the plan contract.
func (p *TravelPlan) Validate() error {
	if p.Destination == "" {
		return errMissingDestination
	}
	if p.Itinerary == nil {
		return errMissingItinerary
	}
	if p.EstimatedCost < 0 {
		return errNegativeCost
	}
	for i, h := range p.HotelSuggestions.Items {
		if h.Rating < 0 || h.Rating > 5 {
			return fmt.Errorf("hotel_suggestions[%d]: rating %.1f outside 0-5", i, h.Rating)
		}
		if h.PricePerNight < 0 {
			return fmt.Errorf("hotel_suggestions[%d]: negative price_per_night", i)
		}
	}
	return nil
}

func (d *DailyPlan) UnmarshalJSON(data []byte) error {
	type alias DailyPlan
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Weather == "" {
		out.Weather = DefaultWeather
	}
	*d = DailyPlan(out)
	return nil
}

func (e *LocalEvent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = LocalEvent{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*e = LocalEvent{Name: label, Legacy: true}
		return nil
	}
	type alias LocalEvent
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*e = LocalEvent(out)
	e.Legacy = false
	return nil
}

func (h *HotelSuggestions) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := HotelSuggestions{Shape: HotelShapeStructured}
	names, objects := 0, 0
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return fmt.Errorf("hotel_suggestions[%d]: %w", i, err)
			}
			out.Items = append(out.Items, HotelSuggestion{Name: name})
			names++
			continue
		}
		var hotel HotelSuggestion
		if err := json.Unmarshal(item, &hotel); err != nil {
			return fmt.Errorf("hotel_suggestions[%d]: %w", i, err)
		}
		out.Items = append(out.Items, hotel)
		objects++
	}

	if names > 0 && objects > 0 {
		return errMixedHotelShapes
	}
	if names > 0 {
		out.Shape = HotelShapeLegacy
	}
	*h = out
	return nil
}

func (h HotelSuggestions) MarshalJSON() ([]byte, error) {
	if h.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.Items)
}

func (h HotelSuggestions) Len() int { return len(h.Items) }

var dayNumberPattern = regexp.MustCompile(`(\d+)\s*$`)

// DayNumber parses the trailing integer of an itinerary key such as "Day 3".
func DayNumber(key string) (int, bool) {
	m := dayNumberPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
