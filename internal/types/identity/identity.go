package identity

import "encoding/json"

// DefaultDisplayName is shown when the provider has no name on file.
const DefaultDisplayName = "TrendMind User"

type CurrentUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// WebhookEvent is the envelope of an identity provider webhook delivery.
type WebhookEvent struct {
	Type   string          `json:"type"`
	Object string          `json:"object"`
	Data   json.RawMessage `json:"data"`
}

type DeletedUserData struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
