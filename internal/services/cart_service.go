package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/models"
	"storefront-service/internal/state"
)

// ErrCartItemNotFound is returned when a cart mutation names a line that
// does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

const mirrorTimeout = 5 * time.Second

// CartService owns the session cart. Mutations are applied to the local
// session cart first and persisted, so the shopping flow never waits on
// the backend; for authenticated sessions the cart is mirrored upstream
// in the background, best-effort and last-write-wins.
type CartService struct {
	carts      state.CartStore
	wishlists  state.WishlistStore
	cartClient *clients.CartClient
	products   *clients.ProductsClient
}

// NewCartService creates a cart service.
func NewCartService(carts state.CartStore, wishlists state.WishlistStore, cartClient *clients.CartClient, products *clients.ProductsClient) *CartService {
	return &CartService{
		carts:      carts,
		wishlists:  wishlists,
		cartClient: cartClient,
		products:   products,
	}
}

// GetCart loads the session cart, returning an empty cart when none is
// stored yet.
func (s *CartService) GetCart(ctx context.Context, session *models.SessionState) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, session.SessionID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return models.NewCart(), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds a line to the session cart and mirrors the result.
func (s *CartService) AddItem(ctx context.Context, session *models.SessionState, item models.CartItem) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}
	cart.AddItem(item)
	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return nil, err
	}
	s.mirror(session, cart)
	return cart, nil
}

// UpdateItem sets the quantity of a line. Quantity <= 0 removes the
// line. Returns ErrCartItemNotFound for an unknown line ID.
func (s *CartService) UpdateItem(ctx context.Context, session *models.SessionState, itemID string, quantity int) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateItem(itemID, quantity) {
		return nil, ErrCartItemNotFound
	}
	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return nil, err
	}
	s.mirror(session, cart)
	return cart, nil
}

// RemoveItem deletes a line from the session cart.
func (s *CartService) RemoveItem(ctx context.Context, session *models.SessionState, itemID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(itemID) {
		return nil, ErrCartItemNotFound
	}
	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return nil, err
	}
	s.mirror(session, cart)
	return cart, nil
}

// Clear empties the session cart. Idempotent: clearing an already empty
// cart succeeds.
func (s *CartService) Clear(ctx context.Context, session *models.SessionState) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return nil, err
	}
	s.mirror(session, cart)
	return cart, nil
}

// Refresh revalidates every cart line against the live catalog: prices
// are updated to the current value and lines are flagged when the
// product is gone, out of stock or repriced since it was added. Lookup
// failures leave the line untouched rather than blocking checkout.
func (s *CartService) Refresh(ctx context.Context, session *models.SessionState) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			var apiErr *clients.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
				item.Status = models.CartItemStatusUnavailable
				continue
			}
			log.WithError(err).WithField("productId", item.ProductID).Warn("cart line revalidation failed, keeping cached data")
			continue
		}

		item.Price = product.Price
		switch {
		case !product.InStock:
			item.Status = models.CartItemStatusOutOfStock
		case product.Stock > 0 && product.Stock < item.Quantity:
			item.Status = models.CartItemStatusLowStock
		case item.Price != item.PriceAtAdd:
			item.Status = models.CartItemStatusPriceChanged
		default:
			item.Status = models.CartItemStatusAvailable
		}
	}
	cart.Recalculate()

	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeOnLogin folds the backend account cart into the session cart so
// items added on another device show up after login. The fetch is
// best-effort; the merged cart is mirrored back.
func (s *CartService) MergeOnLogin(ctx context.Context, session *models.SessionState) error {
	cart, err := s.GetCart(ctx, session)
	if err != nil {
		return err
	}

	if remote := s.cartClient.Fetch(ctx, session.Token); remote != nil {
		cart.Merge(remote)
	}
	if err := s.carts.Save(ctx, session.SessionID, cart); err != nil {
		return err
	}
	s.mirror(session, cart)
	return nil
}

// mirror pushes the cart to the backend in the background for
// authenticated sessions. Detached from the request context so a fast
// response does not cancel the sync.
func (s *CartService) mirror(session *models.SessionState, cart *models.Cart) {
	if !session.IsAuthenticated() {
		return
	}
	token := session.Token
	snapshot := *cart
	snapshot.Items = append([]models.CartItem(nil), cart.Items...)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		s.cartClient.Sync(ctx, token, &snapshot)
	}()
}

// GetWishlist loads the session wishlist.
func (s *CartService) GetWishlist(ctx context.Context, session *models.SessionState) ([]models.WishlistItem, error) {
	items, err := s.wishlists.Get(ctx, session.SessionID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return []models.WishlistItem{}, nil
		}
		return nil, err
	}
	return items, nil
}

// AddToWishlist adds a product to the wishlist. Adding a product that is
// already listed is a no-op.
func (s *CartService) AddToWishlist(ctx context.Context, session *models.SessionState, item models.WishlistItem) ([]models.WishlistItem, error) {
	items, err := s.GetWishlist(ctx, session)
	if err != nil {
		return nil, err
	}
	for _, existing := range items {
		if existing.ProductID == item.ProductID {
			return items, nil
		}
	}
	now := time.Now()
	if item.AddedAt == nil {
		item.AddedAt = &now
	}
	items = append(items, item)
	if err := s.wishlists.Save(ctx, session.SessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveFromWishlist removes a product from the wishlist.
func (s *CartService) RemoveFromWishlist(ctx context.Context, session *models.SessionState, productID string) ([]models.WishlistItem, error) {
	items, err := s.GetWishlist(ctx, session)
	if err != nil {
		return nil, err
	}
	kept := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if err := s.wishlists.Save(ctx, session.SessionID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
