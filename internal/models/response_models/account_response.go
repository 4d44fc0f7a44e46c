package response_models

type VerifyResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          SessionUser `json:"user"`
}

type SessionUser struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
