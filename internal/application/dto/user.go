package dto

import "reminderd/internal/domain/entity"

// CreateUserRequest is the DTO for registering a user.
type CreateUserRequest struct {
	Name      string  `json:"name"`
	PushToken *string `json:"push_token,omitempty"`
}

// RegisterPushTokenRequest is the DTO for setting or clearing a user's push token.
type RegisterPushTokenRequest struct {
	Token string `json:"token"`
}

// UserResponse is the DTO for returning a user. The token itself is never echoed.
type UserResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	HasPushToken bool   `json:"has_push_token"`
}

// ToUserResponse converts an entity.User to a UserResponse DTO.
func ToUserResponse(u *entity.User) UserResponse {
	_, ok := u.Token()
	return UserResponse{ID: u.ID, Name: u.Name, HasPushToken: ok}
}
