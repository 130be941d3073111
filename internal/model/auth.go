package model

// LoginRequest accepts a username or an email as identifier. Matching is
// exact, case-sensitive.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	// Any recognized role passes binding; the identity service rejects
	// admin self-registration with a forbidden error, not a shape error.
	Role Role `json:"role" binding:"required,role"`

	// patient-only
	Age         *int    `json:"age"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	BloodGroup  *string `json:"blood_group" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`

	// doctor-only, optional
	Specialization  *string  `json:"specialization"`
	LicenseNumber   *string  `json:"license_number"`
	ConsultationFee *float64 `json:"consultation_fee" binding:"omitempty,gte=0"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	Session     *Session `json:"session"`
}
