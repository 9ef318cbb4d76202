package handler

import (
	"net/http"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/friend"
)

// AddFriendRequest is the body of POST /api/friends/add
type AddFriendRequest struct {
	FriendID string `json:"friendId" validate:"required,notblank"`
}

// FriendListResponse wraps a friend list
type FriendListResponse struct {
	Friends []domain.Friend `json:"friends"`
}

// SearchResponse wraps player search results
type SearchResponse struct {
	Users []domain.SearchResult `json:"users"`
}

// AddFriendResponse is returned after adding a friend
type AddFriendResponse struct {
	Message string         `json:"message"`
	Friend  *domain.Player `json:"friend"`
}

// FriendHandler serves the friend endpoints
type FriendHandler struct {
	friendSvc friend.Service
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendSvc friend.Service) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// HandleList returns the caller's friends, newest first
// @Summary List friends
// @Tags friends
// @Produce json
// @Success 200 {object} FriendListResponse
// @Failure 401 {object} ErrorResponse
// @Router /friends [get]
// @Security BearerAuth
func (h *FriendHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	friends, err := h.friendSvc.List(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "List friends", err)
		return
	}
	if friends == nil {
		friends = []domain.Friend{}
	}

	respondJSON(w, http.StatusOK, FriendListResponse{Friends: friends})
}

// HandleSearch finds players by username substring
// @Summary Search players
// @Tags friends
// @Produce json
// @Param keyword query string true "Username substring"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /friends/search [get]
// @Security BearerAuth
func (h *FriendHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}
	keyword, ok := GetQueryParam(r, w, "keyword")
	if !ok {
		return
	}

	users, err := h.friendSvc.Search(r.Context(), playerID, keyword)
	if err != nil {
		respondServiceError(w, r, "Search players", err)
		return
	}
	if users == nil {
		users = []domain.SearchResult{}
	}

	respondJSON(w, http.StatusOK, SearchResponse{Users: users})
}

// HandleAdd creates a friendship in both directions
// @Summary Add a friend
// @Tags friends
// @Accept json
// @Produce json
// @Param request body AddFriendRequest true "Player to befriend"
// @Success 200 {object} AddFriendResponse
// @Failure 400 {object} ErrorResponse "Already friends or self"
// @Failure 404 {object} ErrorResponse
// @Router /friends/add [post]
// @Security BearerAuth
func (h *FriendHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req AddFriendRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add friend"); err != nil {
		return
	}

	added, err := h.friendSvc.Add(r.Context(), playerID, req.FriendID)
	if err != nil {
		respondServiceError(w, r, "Add friend", err)
		return
	}

	respondJSON(w, http.StatusOK, AddFriendResponse{Message: MsgFriendAddedSuccess, Friend: added})
}

// HandleRemove deletes a friendship
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Param friendID path string true "Friend's player ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not friends"
// @Router /friends/{friendID} [delete]
// @Security BearerAuth
func (h *FriendHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}
	friendID, ok := GetURLParam(r, w, "friendID")
	if !ok {
		return
	}

	if err := h.friendSvc.Remove(r.Context(), playerID, friendID); err != nil {
		respondServiceError(w, r, "Remove friend", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRemovedSuccess})
}
