package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound     = "player not found"
	ErrMsgUsernameTaken      = "username already taken"
	ErrMsgInvalidCredentials = "invalid username or password"
	ErrMsgUnauthorized       = "unauthorized"
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgUnknownCrop        = "unknown crop"

	// Plot errors
	ErrMsgPlotNotFound     = "plot not found"
	ErrMsgPlotOccupied     = "plot already has a crop"
	ErrMsgNotReady         = "crop is not ready yet"
	ErrMsgNothingToHarvest = "nothing to harvest"

	// Theft errors
	ErrMsgNoCrop           = "no crop on this plot"
	ErrMsgAlreadyStolen    = "already stolen from this plot"
	ErrMsgNotFriends       = "not friends"
	ErrMsgAlreadyFriends   = "already friends"
	ErrMsgCannotFriendSelf = "cannot add yourself as a friend"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound     = errors.New(ErrMsgPlayerNotFound)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	// ErrUnknownCrop is reported to clients as invalid input
	ErrUnknownCrop = errors.New(ErrMsgUnknownCrop)

	// Plot errors
	ErrPlotNotFound     = errors.New(ErrMsgPlotNotFound)
	ErrPlotOccupied     = errors.New(ErrMsgPlotOccupied)
	ErrNotReady         = errors.New(ErrMsgNotReady)
	ErrNothingToHarvest = errors.New(ErrMsgNothingToHarvest)

	// Theft / friend errors
	ErrNoCrop           = errors.New(ErrMsgNoCrop)
	ErrAlreadyStolen    = errors.New(ErrMsgAlreadyStolen)
	ErrNotFriends       = errors.New(ErrMsgNotFriends)
	ErrAlreadyFriends   = errors.New(ErrMsgAlreadyFriends)
	ErrCannotFriendSelf = errors.New(ErrMsgCannotFriendSelf)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
