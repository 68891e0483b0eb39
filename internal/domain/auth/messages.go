package auth

// User-facing messages shared by the CLI and services.
const (
	MsgNetworkError    = "Could not connect to the server"
	MsgServerError     = "Server error"
	MsgValidationError = "Please check the data you entered"
	MsgUnknownError    = "An unexpected error occurred"

	MsgRegisterSuccess = "User registered successfully"
	MsgLoginSuccess    = "Welcome! Signed in successfully"
	MsgLogoutSuccess   = "Signed out successfully"
)
