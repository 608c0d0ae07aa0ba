package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/store"
	"github.com/unimarket/gateway/pkg/idx"
)

type guestCartsRepo struct {
	db *sql.DB
}

func (r *guestCartsRepo) Upsert(ctx context.Context, cart domain.GuestCart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("encoding cart items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO guest_carts (id, items, updated_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			items = excluded.items,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at
	`, cart.ID.String(), string(items), cart.UpdatedAt.UTC(), cart.ExpiresAt.UTC())
	return err
}

func (r *guestCartsRepo) Get(ctx context.Context, id idx.ID) (domain.GuestCart, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, items, updated_at, expires_at
		FROM guest_carts
		WHERE id = ?
	`, id.String())

	var (
		rawID, rawItems      string
		updatedAt, expiresAt time.Time
	)
	if err := row.Scan(&rawID, &rawItems, &updatedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GuestCart{}, store.ErrNotFound
		}
		return domain.GuestCart{}, err
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(rawItems), &items); err != nil {
		return domain.GuestCart{}, fmt.Errorf("decoding cart items: %w", err)
	}

	cart := domain.GuestCart{
		ID:        idx.ID(rawID),
		Items:     items,
		UpdatedAt: updatedAt,
		ExpiresAt: expiresAt,
	}

	// Expired rows awaiting housekeeping behave as absent.
	if cart.Expired(time.Now()) {
		return domain.GuestCart{}, store.ErrNotFound
	}

	return cart, nil
}

func (r *guestCartsRepo) Delete(ctx context.Context, id idx.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM guest_carts WHERE id = ?`, id.String())
	return err
}

func (r *guestCartsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM guest_carts WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
