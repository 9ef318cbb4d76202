package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced player does not exist
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgInvalidPlayerID        = "invalid player id"
	ErrMsgFailedToGetPlayer      = "failed to get player"
	ErrMsgFailedToInsertPlayer   = "failed to insert player"
	ErrMsgFailedToSearchPlayers  = "failed to search players"
	ErrMsgFailedToUpdateCoins    = "failed to update coins"
	ErrMsgFailedToUpdateProgress = "failed to update progress"
)

// Error Messages - Plot Operations
const (
	ErrMsgFailedToCreatePlots  = "failed to create plots"
	ErrMsgFailedToGetPlots     = "failed to get plots"
	ErrMsgFailedToGetPlot      = "failed to get plot"
	ErrMsgFailedToPlantCrop    = "failed to plant crop"
	ErrMsgFailedToRecordTheft  = "failed to record theft"
	ErrMsgFailedToResetPlot    = "failed to reset plot"
	ErrMsgFailedToScanPlotRows = "failed to scan plot"
)

// Error Messages - Friend Operations
const (
	ErrMsgFailedToCheckFriendship  = "failed to check friendship"
	ErrMsgFailedToListFriends      = "failed to list friends"
	ErrMsgFailedToAddFriendship    = "failed to add friendship"
	ErrMsgFailedToRemoveFriendship = "failed to remove friendship"
)
