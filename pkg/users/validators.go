package users

import "regexp"

var (
	// Usernames are letters, digits, and underscores, 3 to 20 characters.
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

	// Password strength: at least 8 characters drawn from the allowed set,
	// with at least one lowercase letter, one uppercase letter, one digit,
	// and one symbol.
	passwordCharsetRE = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]{8,}$`)
	passwordLowerRE   = regexp.MustCompile(`[a-z]`)
	passwordUpperRE   = regexp.MustCompile(`[A-Z]`)
	passwordDigitRE   = regexp.MustCompile(`[0-9]`)
	passwordSymbolRE  = regexp.MustCompile(`[@$!%*?&]`)
)

func isValidUsername(username string) bool {
	return usernameRE.MatchString(username)
}

func isValidPassword(password string) bool {
	return passwordCharsetRE.MatchString(password) &&
		passwordLowerRE.MatchString(password) &&
		passwordUpperRE.MatchString(password) &&
		passwordDigitRE.MatchString(password) &&
		passwordSymbolRE.MatchString(password)
}

// RegisterUserPayload represents the request body for registering a user.
type RegisterUserPayload struct {
	Name      string  `json:"name"`
	Surname   *string `json:"surname"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	ImageLink *string `json:"image_link"`
}

// LoginPayload represents the login request body.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserPayload represents the request body for a partial update. Every
// field is optional; absent fields are left untouched.
type UpdateUserPayload struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	ImageLink *string `json:"image_link"`
}

// RateBookPayload represents the request body for rating a book.
type RateBookPayload struct {
	Star *int `json:"star" validate:"required"`
}
