package cart

import (
	"math/big"
	"sync"

	"go.uber.org/zap"

	"moms-kitchen/storefront/storage"
	"moms-kitchen/storefront/types"
)

// Store owns the current cart state and writes every new state through to a
// storage slot. One Store is created at application start and handed to
// every screen and command that needs the cart.
//
// Storage failures never surface to callers: an unreadable snapshot yields
// an empty cart and a failed write leaves the in-memory state authoritative.
type Store struct {
	mu     sync.RWMutex
	state  State
	slot   storage.Slot
	key    string
	logger *zap.Logger
}

// Open creates a store and reconciles it with the snapshot under key, if
// any. An empty key selects DefaultStorageKey.
func Open(slot storage.Slot, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{slot: slot, key: key, logger: logger.Named("cart")}
	if snapshot, ok := s.readSnapshot(); ok {
		s.LoadCart(snapshot)
	}
	return s
}

func (s *Store) readSnapshot() (State, bool) {
	payload, ok, err := s.slot.Get(s.key)
	if err != nil {
		s.logger.Warn("failed to read cart from storage", zap.String("key", s.key), zap.Error(err))
		return State{}, false
	}
	if !ok {
		return State{}, false
	}

	state, err := Decode(payload)
	if err != nil {
		s.logger.Warn("discarding unreadable cart snapshot", zap.String("key", s.key), zap.Error(err))
		if err := s.slot.Delete(s.key); err != nil {
			s.logger.Warn("failed to discard cart snapshot", zap.String("key", s.key), zap.Error(err))
		}
		return State{}, false
	}
	return state, true
}

// Dispatch applies action, persists the result and returns it.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	s.persist(s.state)
	return s.state
}

func (s *Store) persist(state State) {
	payload, err := Encode(state)
	if err == nil {
		err = s.slot.Set(s.key, payload)
	}
	if err != nil {
		s.logger.Warn("failed to save cart to storage", zap.String("key", s.key), zap.Error(err))
	}
}

// AddItem adds one of item. Unavailable items are ignored.
func (s *Store) AddItem(item types.MenuItem) State {
	if !item.Available {
		s.logger.Debug("ignoring unavailable item", zap.Uint64("menu_item_id", item.ID))
	}
	return s.Dispatch(AddItem{Item: item})
}

// RemoveItem drops the line for id if present.
func (s *Store) RemoveItem(id uint64) State {
	return s.Dispatch(RemoveItem{ID: id})
}

// UpdateQuantity sets the quantity for an existing line; zero or less removes it.
// Unknown IDs are ignored.
func (s *Store) UpdateQuantity(id uint64, quantity int) State {
	return s.Dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

// ClearCart empties the cart, typically after an order is placed.
func (s *Store) ClearCart() State {
	return s.Dispatch(ClearCart{})
}

// LoadCart replaces the whole cart. It is meant for startup reconciliation.
func (s *Store) LoadCart(state State) State {
	return s.Dispatch(LoadCart{State: state})
}

// State returns the current cart.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TotalItemCount is the number of units across all lines.
func (s *Store) TotalItemCount() int {
	return s.State().TotalItemCount()
}

// Subtotal is the cart total in cents.
func (s *Store) Subtotal() *big.Int {
	return s.State().Subtotal()
}
