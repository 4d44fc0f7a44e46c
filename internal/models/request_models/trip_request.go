package request_models

// TripRequest is the JSON body sent to the planning service.
type TripRequest struct {
	Destination string  `json:"destination"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Budget      float64 `json:"budget"`
	Preferences string  `json:"preferences"`
}

// TripFormInput is the raw detailed planning form.
type TripFormInput struct {
	Destination string `form:"destination" binding:"required"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Budget      string `form:"budget"`
	Preferences string `form:"preferences"`
}

// QuickSearchInput is the landing page search box.
type QuickSearchInput struct {
	Destination string `form:"destination" binding:"required"`
	Budget      string `form:"budget"`
	Days        string `form:"days"`
}

// PageQuery selects the itinerary page to display.
type PageQuery struct {
	Page int `form:"page"`
}
