package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingURLParam   = "Missing %s path parameter"

	// Auth error messages
	ErrMsgMissingToken = "Authentication required"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Account messages
	ErrMsgPlayerNotFoundError     = "User not found"
	ErrMsgUsernameTakenError      = "Username is already taken"
	ErrMsgInvalidCredentialsError = "Invalid username or password"
	ErrMsgUnauthorizedError       = "Invalid or expired token"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."

	// Farm messages
	ErrMsgUnknownCropError      = "Unknown crop type"
	ErrMsgNotEnoughCoinsError   = "Not enough coins"
	ErrMsgPlotNotFoundError     = "Plot not found"
	ErrMsgPlotOccupiedError     = "This plot already has a crop"
	ErrMsgNotReadyError         = "The crop is not ready yet"
	ErrMsgNothingToHarvestError = "There is nothing to harvest"
	ErrMsgNoCropError           = "There is no crop on this plot"
	ErrMsgAlreadyStolenError    = "You have already stolen from this plot"

	// Friend messages
	ErrMsgNotFriendsError       = "You are not friends with this player"
	ErrMsgAlreadyFriendsError   = "You are already friends"
	ErrMsgCannotFriendSelfError = "You cannot add yourself as a friend"
)

// Success messages for API responses
const (
	MsgRegisterSuccess      = "Registration successful"
	MsgLoginSuccess         = "Login successful"
	MsgPlantSuccess         = "Planted successfully"
	MsgHarvestSuccess       = "Harvested successfully"
	MsgStealSuccessFormat   = "Stole %d coins worth of %s!"
	MsgFriendAddedSuccess   = "Friend added"
	MsgFriendRemovedSuccess = "Friend removed"
	MsgServerRunning        = "StealFarm server is running"
)

// Log messages
const (
	LogMsgRequestDecodeFailed   = "Failed to decode request"
	LogMsgRequestValidateFailed = "Request validation failed"
	LogMsgServiceError          = "Service call failed"
	LogMsgReadinessFailed       = "Readiness check failed"
	LogMsgEncodeFailed          = "Failed to encode JSON response"
	LogMsgWriteFailed           = "Failed to write response buffer"
)
