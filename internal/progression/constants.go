package progression

// Log messages
const (
	LogMsgLevelUp = "Player leveled up"
)
