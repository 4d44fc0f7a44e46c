package services

import (
	"strconv"
	"strings"
	"time"

	"zenjourney/internal/models/request_models"
	"zenjourney/pkg/utils"
)

// QuickSearchPreferences is sent for plans started from the landing page search.
const QuickSearchPreferences = "Based on search form"

// Budget tiers offered by the quick search.
const (
	TierBudget   = "budget"
	TierModerate = "moderate"
	TierLuxury   = "luxury"
)

// BudgetForTier maps a quick-search tier to a numeric budget.
func BudgetForTier(tier string) float64 {
	switch tier {
	case TierBudget:
		return 1000
	case TierModerate:
		return 2500
	default:
		return 5000
	}
}

// NormalizeTripForm converts the detailed form into a request payload.
func NormalizeTripForm(in request_models.TripFormInput) (request_models.TripRequest, error) {
	budget, err := strconv.ParseFloat(strings.TrimSpace(in.Budget), 64)
	if err != nil {
		return request_models.TripRequest{}, &utils.ValidationError{Field: "budget", Message: "must be a number"}
	}

	out := request_models.TripRequest{
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   strings.TrimSpace(in.StartDate),
		EndDate:     strings.TrimSpace(in.EndDate),
		Budget:      budget,
		Preferences: strings.TrimSpace(in.Preferences),
	}
	if err := ValidateTripRequest(out); err != nil {
		return request_models.TripRequest{}, err
	}
	return out, nil
}

// NormalizeQuickSearch expands {destination, tier, days} into a full request
// that starts today and ends today plus days.
func NormalizeQuickSearch(in request_models.QuickSearchInput, now time.Time) (request_models.TripRequest, error) {
	days, err := strconv.Atoi(strings.TrimSpace(in.Days))
	if err != nil {
		return request_models.TripRequest{}, &utils.ValidationError{Field: "days", Message: "must be a whole number of days"}
	}
	if days < 0 {
		return request_models.TripRequest{}, &utils.ValidationError{Field: "days", Message: "must not be negative"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := request_models.TripRequest{
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   utils.FormatISODate(today),
		EndDate:     utils.FormatISODate(utils.AddDays(today, days)),
		Budget:      BudgetForTier(in.Budget),
		Preferences: QuickSearchPreferences,
	}
	if err := ValidateTripRequest(out); err != nil {
		return request_models.TripRequest{}, err
	}
	return out, nil
}
