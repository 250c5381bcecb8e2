package auth

import (
	"strings"

	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/validator"
)

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	EmployeeCode    string `json:"employee_id" validate:"required,employee_code"`
	Department      string `json:"department" validate:"required,max=100"`
	Role            string `json:"role" validate:"omitempty,oneof=employee manager"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.Department = strings.TrimSpace(r.Department)
	if r.Role == "" {
		r.Role = string(employee.RoleEmployee)
	}

	return validator.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type TokenResponse struct {
	AccessToken          string                   `json:"access_token"`
	AccessTokenExpiresIn int64                    `json:"access_token_expires_in"`
	Employee             employee.ProfileResponse `json:"employee"`
}
