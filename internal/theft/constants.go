package theft

// Log messages
const (
	LogMsgCropStolen    = "Crop stolen"
	LogMsgStealRejected = "Steal rejected"
)
