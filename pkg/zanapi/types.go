package zanapi

// Status is the envelope shared by the account and mutation endpoints.
type Status struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s Status) status() Status { return s }

// ============================================================================
// Account Types
// ============================================================================

// User is the profile of an operator account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Status
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ProfileResponse is returned by GET and PUT /user/profile.
type ProfileResponse struct {
	Status
	User User `json:"user"`
}

// UpdateProfileRequest is the body of PUT /user/profile.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ChangePasswordRequest is the body of POST /user/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ============================================================================
// Record Types
// ============================================================================

// Record is a flat client configuration row. The backend owns the column set.
type Record = map[string]any

// ClientDefaults is returned by GET /client-defaults, one map per record group.
type ClientDefaults struct {
	Status
	ClientDetails      Record `json:"client_details"`
	ClientAppDetails   Record `json:"client_appdetails"`
	NotificationConfig Record `json:"notification_config"`
}

// LastUpdatedRow is one client's freshness row from GET /lastupdated.
// Timestamps are "YYYY-MM-DD HH:MM" strings, empty when unknown.
type LastUpdatedRow struct {
	ClientName              string `json:"clientName"`
	CurrentTime             string `json:"currentTime"`
	DeviceStatusLastUpdated string `json:"deviceStatusLastUpdated"`
	PeopleLastUpdated       string `json:"peopleLastUpdated"`
	AnalyticsLastUpdated    string `json:"analyticsLastUpdated"`
	FlightLastUpdated       string `json:"flightLastUpdated"`
	TrafficLastUpdated      string `json:"trafficLastUpdated"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK  bool   `json:"ok"`
	Env string `json:"env,omitempty"`
	DB  string `json:"db,omitempty"`
}
