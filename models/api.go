package models

// Resource endpoints return entities directly on success and field-addressable
// error maps on failure (see the validation package). The shapes below cover
// the remaining non-resource responses.

// LoginResponse is returned by the login endpoint on success.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserSlim `json:"user"`
}

// ServiceUnavailableMessage is the fixed message returned when the
// persistence collaborator cannot be reached. It is never attributable
// to a field.
const ServiceUnavailableMessage = "The service is currently unavailable. Please try again later."
