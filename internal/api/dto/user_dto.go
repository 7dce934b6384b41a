package dto

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

// CreateUserRequest payload for POST /user/new. The identifier is accepted under
// both user_id and userId so a client cannot slip one past the create guard.
type CreateUserRequest struct {
	UserID      int64  `json:"user_id"`
	UserIDCamel int64  `json:"userId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
}

// ToDomain maps the payload onto a candidate user.
func (r CreateUserRequest) ToDomain() *domain.User {
	id := r.UserID
	if id == 0 {
		id = r.UserIDCamel
	}
	return &domain.User{
		UserID:   id,
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// UserResponse is the public view of a user. The password is never exposed.
type UserResponse struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
