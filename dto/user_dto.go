package dto

import (
	"time"

	"recipe-api/models"
)

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=255"`
}

type UpdateUserInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of a user. The password is never part of it.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{Email: user.Email, Name: user.Name}
}

type AdminUserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
}

func NewAdminUserResponse(user *models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		LastLogin:   user.LastLogin,
	}
}
