package user

// Account limits
const (
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinPasswordLength = 4
	MaxPasswordLength = 72 // bcrypt ignores bytes past 72
)

// Log messages
const (
	LogMsgPlayerRegistered = "Player registered"
	LogMsgRegisterFailed   = "Failed to register player"
	LogMsgLoginSucceeded   = "Player logged in"
	LogMsgLoginFailed      = "Login failed"
)
