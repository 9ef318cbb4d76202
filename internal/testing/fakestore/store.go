// Package fakestore is a stateful in-memory implementation of the repository
// interfaces for service tests. Transactions hold the store lock from Begin
// until Commit or Rollback and work on a private copy of the state.
package fakestore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

type friendEdge struct {
	since time.Time
}

type state struct {
	players map[string]domain.Player
	plots   map[string][]domain.Plot
	friends map[string]map[string]friendEdge
}

func newState() *state {
	return &state{
		players: make(map[string]domain.Player),
		plots:   make(map[string][]domain.Plot),
		friends: make(map[string]map[string]friendEdge),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, plots := range s.plots {
		cp := make([]domain.Plot, len(plots))
		for i, p := range plots {
			cp[i] = copyPlot(p)
		}
		c.plots[k] = cp
	}
	for k, edges := range s.friends {
		m := make(map[string]friendEdge, len(edges))
		for id, e := range edges {
			m[id] = e
		}
		c.friends[k] = m
	}
	return c
}

func copyPlot(p domain.Plot) domain.Plot {
	if p.CropID != nil {
		id := *p.CropID
		p.CropID = &id
	}
	if p.PlantedAt != nil {
		at := *p.PlantedAt
		p.PlantedAt = &at
	}
	p.StolenBy = append([]string(nil), p.StolenBy...)
	return p
}

// Store implements repository.Player, repository.Farm and repository.Friend
type Store struct {
	mu       sync.Mutex
	state    *state
	failures map[string]error
	commits  int
}

var (
	_ repository.Player = (*Store)(nil)
	_ repository.Farm   = (*Store)(nil)
	_ repository.Friend = (*Store)(nil)
)

// New creates an empty store
func New() *Store {
	return &Store{
		state:    newState(),
		failures: make(map[string]error),
	}
}

// FailNext makes the next call of op (a method name such as "AddCoins") return err
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Commits returns the number of committed transactions
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// takeFailure must be called with s.mu held
func (s *Store) takeFailure(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// SeedPlayer inserts a player with count empty plots, bypassing transactions
func (s *Store) SeedPlayer(p domain.Player, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.players[p.ID] = p
	s.state.plots[p.ID] = emptyPlots(p.ID, count)
}

// SeedPlot overwrites one stored plot
func (s *Store) SeedPlot(p domain.Plot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plots := s.state.plots[p.OwnerID]
	if p.Index >= 0 && p.Index < len(plots) {
		plots[p.Index] = copyPlot(p)
	}
}

// SeedFriends makes a and b friends
func (s *Store) SeedFriends(a, b string, since time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addEdge(s.state, a, b, since)
	addEdge(s.state, b, a, since)
}

// Player returns a copy of the stored player
func (s *Store) Player(id string) (domain.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.players[id]
	return p, ok
}

// Plot returns a copy of the stored plot
func (s *Store) Plot(ownerID string, index int) (domain.Plot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := findPlot(s.state, ownerID, index)
	if err != nil {
		return domain.Plot{}, false
	}
	return copyPlot(*p), true
}

func emptyPlots(ownerID string, count int) []domain.Plot {
	plots := make([]domain.Plot, count)
	for i := range plots {
		plots[i] = domain.Plot{OwnerID: ownerID, Index: i, StolenBy: []string{}}
	}
	return plots
}

func addEdge(st *state, from, to string, since time.Time) {
	if st.friends[from] == nil {
		st.friends[from] = make(map[string]friendEdge)
	}
	st.friends[from][to] = friendEdge{since: since}
}

func findPlot(st *state, ownerID string, index int) (*domain.Plot, error) {
	plots := st.plots[ownerID]
	if index < 0 || index >= len(plots) {
		return nil, fmt.Errorf("%w: owner %s index %d", domain.ErrPlotNotFound, ownerID, index)
	}
	return &plots[index], nil
}

func findPlayer(st *state, id string) (*domain.Player, error) {
	p, ok := st.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, id)
	}
	return &p, nil
}

// GetPlayerByID implements repository.Player
func (s *Store) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("GetPlayerByID"); err != nil {
		return nil, err
	}
	return findPlayer(s.state, playerID)
}

// GetPlayerByUsername implements repository.Player
func (s *Store) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.players {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, username)
}

// SearchPlayers implements repository.Player with a case-folded substring match
func (s *Store) SearchPlayers(ctx context.Context, keyword, excludeID string, limit int) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fold := cases.Fold()
	needle := fold.String(keyword)

	var out []domain.Player
	for _, p := range s.state.players {
		if p.ID == excludeID {
			continue
		}
		if strings.Contains(fold.String(p.Username), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// BeginPlayerTx implements repository.Player
func (s *Store) BeginPlayerTx(ctx context.Context) (repository.PlayerTx, error) {
	return s.begin()
}

// GetPlots implements repository.Farm
func (s *Store) GetPlots(ctx context.Context, ownerID string) ([]domain.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("GetPlots"); err != nil {
		return nil, err
	}
	plots := s.state.plots[ownerID]
	out := make([]domain.Plot, len(plots))
	for i, p := range plots {
		out[i] = copyPlot(p)
	}
	return out, nil
}

// GetPlot implements repository.Farm
func (s *Store) GetPlot(ctx context.Context, ownerID string, index int) (*domain.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := findPlot(s.state, ownerID, index)
	if err != nil {
		return nil, err
	}
	cp := copyPlot(*p)
	return &cp, nil
}

// BeginFarmTx implements repository.Farm
func (s *Store) BeginFarmTx(ctx context.Context) (repository.FarmTx, error) {
	return s.begin()
}

// AreFriends implements repository.Friend
func (s *Store) AreFriends(ctx context.Context, playerID, otherID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure("AreFriends"); err != nil {
		return false, err
	}
	_, ok := s.state.friends[playerID][otherID]
	return ok, nil
}

// ListFriends implements repository.Friend
func (s *Store) ListFriends(ctx context.Context, playerID string) ([]domain.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Friend, 0, len(s.state.friends[playerID]))
	for id, edge := range s.state.friends[playerID] {
		p, ok := s.state.players[id]
		if !ok {
			continue
		}
		out = append(out, domain.Friend{ID: id, Username: p.Username, Level: p.Level, FriendSince: edge.since})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FriendSince.Equal(out[j].FriendSince) {
			return out[i].FriendSince.After(out[j].FriendSince)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// AddFriendship implements repository.Friend
func (s *Store) AddFriendship(ctx context.Context, playerID, friendID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.friends[playerID][friendID]; ok {
		return domain.ErrAlreadyFriends
	}
	addEdge(s.state, playerID, friendID, at)
	addEdge(s.state, friendID, playerID, at)
	return nil
}

// RemoveFriendship implements repository.Friend
func (s *Store) RemoveFriendship(ctx context.Context, playerID, friendID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.friends[playerID][friendID]
	delete(s.state.friends[playerID], friendID)
	delete(s.state.friends[friendID], playerID)
	return ok, nil
}

func (s *Store) begin() (*tx, error) {
	s.mu.Lock()
	if err := s.takeFailure("Begin"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &tx{store: s, st: s.state.clone()}, nil
}
