package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
)

const keySession = "session:%s"

// State is the per-customer session: the cart, the pending-order snapshot and
// a few tracking conveniences. It is loaded at request start and persisted at
// request end by the middleware; mutations must mark it dirty.
type State struct {
	Cart           domain.Cart                  `json:"cart"`
	PendingOrder   *domain.PendingOrderSnapshot `json:"pending_order,omitempty"`
	CustomerPhone  string                       `json:"customer_phone,omitempty"`
	CurrentOrderID string                       `json:"current_order_id,omitempty"`
	Admin          bool                         `json:"admin,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`

	dirty bool
}

func NewState() *State {
	return &State{
		Cart:      domain.Cart{Lines: []domain.CartLine{}, Addons: []domain.CartLine{}},
		CreatedAt: time.Now().UTC(),
		dirty:     true,
	}
}

func (s *State) MarkDirty() {
	s.dirty = true
}

func (s *State) Dirty() bool {
	return s.dirty
}

type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns the stored state for the session id, or nil when the session
// is unknown or expired.
func (s *Store) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.rdb.Get(ctx, fmt.Sprintf(keySession, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("discarding unreadable session", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, nil
	}
	if state.Cart.Lines == nil {
		state.Cart.Lines = []domain.CartLine{}
	}
	if state.Cart.Addons == nil {
		state.Cart.Addons = []domain.CartLine{}
	}
	return &state, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.rdb.Set(ctx, fmt.Sprintf(keySession, sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	state.dirty = false
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, fmt.Sprintf(keySession, sessionID)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
