package friend

// SearchLimit caps username search results
const SearchLimit = 10

// Log messages
const (
	LogMsgFriendAdded   = "Friend added"
	LogMsgFriendRemoved = "Friend removed"
)
