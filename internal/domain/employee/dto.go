package employee

// ProfileResponse is the public view of an employee.
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	Role         Role   `json:"role"`
}

func ToProfile(e Employee) ProfileResponse {
	return ProfileResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
		Role:         e.Role,
	}
}
