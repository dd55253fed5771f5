package dto

// UpdateProfileRequest carries the whitelisted mutable profile fields.
// Pointers distinguish "not sent" from "set to empty".
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}
