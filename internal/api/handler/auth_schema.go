package handler

// --- Request types ---

type sendOTPRequest struct {
	Username string `json:"username" validate:"required"`
}

type verifyCredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	OTP      string `json:"otp"      validate:"required,len=6,numeric"`
}

// --- Response types ---

// errorResponse documents the failure envelope rendered by the central error
// handler on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// messageResponse is the generic success envelope.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// loginResponse carries the access token in the body only; the refresh token
// travels exclusively in the HTTP-only cookie.
type loginResponse struct {
	Success     bool   `json:"success"`
	IsAdmin     bool   `json:"isAdmin"`
	Name        string `json:"name"`
	Vendor      string `json:"vendor,omitempty"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

type refreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}
