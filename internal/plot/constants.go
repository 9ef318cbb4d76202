package plot

// Log messages
const (
	LogMsgCropPlanted      = "Crop planted"
	LogMsgStaleCropCleared = "Cleared plot holding unknown crop"
	LogMsgFarmVisitDenied  = "Farm visit denied, players are not friends"
)
