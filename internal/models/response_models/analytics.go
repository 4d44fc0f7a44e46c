package response_models

// Analytics is the admin dashboard payload.
type Analytics struct {
	TotalCalls      int64            `json:"total_calls"`
	AverageDuration float64          `json:"average_duration"`
	CommonQuestions []CommonQuestion `json:"common_questions"`
}

type CommonQuestion struct {
	Question string `json:"question"`
	Count    int64  `json:"count"`
}
