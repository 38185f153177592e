package models

import "time"

const (
	RoleAdmin  = 1
	RoleClient = 2
)

type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        *string   `json:"email"`
	RoleID       *int      `json:"role_id"`
	ClientID     *int64    `json:"client_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.RoleID != nil && *u.RoleID == RoleAdmin
}

// LoginUser — пользователь вместе со статусом привязанного клиента.
type LoginUser struct {
	User
	ClientStatus *int `json:"client_status"`
}

// Approved: админы и пользователи без клиента не требуют одобрения.
func (u *LoginUser) Approved() bool {
	if u.ClientID == nil || u.IsAdmin() {
		return true
	}
	return u.ClientStatus != nil && *u.ClientStatus == ClientStatusActive
}

type LoginUserResponse struct {
	UserID       int64   `json:"user_id"`
	Username     string  `json:"username"`
	RoleID       *int    `json:"role_id"`
	Email        *string `json:"email"`
	ClientID     *int64  `json:"client_id"`
	ClientStatus *int    `json:"client_status"`
}

func (u *LoginUser) Response() LoginUserResponse {
	return LoginUserResponse{
		UserID:       u.ID,
		Username:     u.Username,
		RoleID:       u.RoleID,
		Email:        u.Email,
		ClientID:     u.ClientID,
		ClientStatus: u.ClientStatus,
	}
}
