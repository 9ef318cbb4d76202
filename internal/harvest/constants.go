package harvest

// Log messages
const (
	LogMsgHarvested       = "Crop harvested"
	LogMsgHarvestRejected = "Harvest rejected"
)
