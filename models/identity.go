package models

// Identity is the authenticated user's own profile slice, loaded once per
// session and invalidated when the auth token is cleared.
type Identity struct {
	UserID          string `json:"user_id"`
	GenderInterest  string `json:"gender_interest"`
	ProfileImageURL string `json:"profile_image_url"`
}
