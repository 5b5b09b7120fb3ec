package clientcart

import (
	"context"
	"fmt"

	"github.com/cartify/cartify/internal/models"
)

// Store tracks the two cart states a storefront client juggles: the local,
// unauthenticated cart (durable through Storage) and a cached reflection of
// the server cart. While logged out every mutation targets the local list;
// after login mutations go to the server and the reflection is refetched
// lazily instead of being projected locally. Not safe for concurrent use.
type Store struct {
	api     API
	storage Storage

	local  []LocalEntry
	server []models.CartLine
	stale  bool
	authed bool
}

func NewStore(api API, storage Storage) (*Store, error) {
	local, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		api:     api,
		storage: storage,
		local:   local,
		stale:   true,
	}, nil
}

func (s *Store) Authenticated() bool { return s.authed }

// Local returns a copy of the unauthenticated cart entries.
func (s *Store) Local() []LocalEntry {
	out := make([]LocalEntry, len(s.local))
	copy(out, s.local)
	return out
}

func (s *Store) addLocal(itemID uint, quantity int) error {
	for i, e := range s.local {
		if e.ItemID == itemID {
			s.local[i].Quantity += quantity
			return s.storage.Save(s.local)
		}
	}
	s.local = append(s.local, LocalEntry{ItemID: itemID, Quantity: quantity})
	return s.storage.Save(s.local)
}

func (s *Store) removeLocal(itemID uint) error {
	kept := s.local[:0]
	for _, e := range s.local {
		if e.ItemID != itemID {
			kept = append(kept, e)
		}
	}
	s.local = kept
	return s.storage.Save(s.local)
}

func (s *Store) clearLocal() error {
	s.local = nil
	return s.storage.Save(s.local)
}

// Login authenticates and hands the local cart to the server for merging.
// The local list is cleared unconditionally afterwards; this transfer is
// one-way and happens once.
func (s *Store) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := s.api.Login(ctx, email, password, s.local)
	if err != nil {
		return nil, err
	}

	s.authed = true
	s.stale = true
	if err := s.clearLocal(); err != nil {
		return resp, fmt.Errorf("clear local cart: %w", err)
	}
	return resp, nil
}

// Cart returns the server reflection, refetching it when stale.
func (s *Store) Cart(ctx context.Context) ([]models.CartLine, error) {
	if !s.authed {
		return nil, nil
	}
	if s.stale {
		lines, err := s.api.FetchCart(ctx)
		if err != nil {
			return nil, err
		}
		s.server = lines
		s.stale = false
	}
	return s.server, nil
}

func (s *Store) AddItem(ctx context.Context, itemID uint, quantity int) error {
	if !s.authed {
		return s.addLocal(itemID, quantity)
	}
	if err := s.api.AddItem(ctx, itemID, quantity); err != nil {
		return err
	}
	s.stale = true
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, itemID uint) error {
	if !s.authed {
		return s.removeLocal(itemID)
	}
	if err := s.api.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	s.stale = true
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if !s.authed {
		return s.clearLocal()
	}
	if err := s.api.ClearCart(ctx); err != nil {
		return err
	}
	s.stale = true
	return nil
}

// TotalItems sums quantities across the server reflection and the local
// list. Post-login the local list is empty, so the sum is server-only.
func (s *Store) TotalItems(ctx context.Context) (int, error) {
	total := 0
	if s.authed {
		lines, err := s.Cart(ctx)
		if err != nil {
			return 0, err
		}
		for _, l := range lines {
			total += l.Quantity
		}
	}
	for _, e := range s.local {
		total += e.Quantity
	}
	return total, nil
}

// TotalPrice sums over the server reflection only; local entries carry no
// price until they are merged and joined with the catalog.
func (s *Store) TotalPrice(ctx context.Context) (float64, error) {
	if !s.authed {
		return 0, nil
	}
	lines, err := s.Cart(ctx)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, l := range lines {
		total += l.Item.Price * float64(l.Quantity)
	}
	return total, nil
}
