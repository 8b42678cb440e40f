// internal/adapters/out/db/order_archive_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	orderdom "leafline/internal/domain/order"
)

// OrderArchivePG mirrors placed orders into Postgres for reporting. Firestore
// stays the system of record; this sink is best-effort and the caller only
// logs failures.
type OrderArchivePG struct {
	DB *sql.DB
}

func NewOrderArchivePG(db *sql.DB) *OrderArchivePG {
	return &OrderArchivePG{DB: db}
}

const createOrderArchiveSQL = `
CREATE TABLE IF NOT EXISTS order_archive (
    order_id           TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    device_id          TEXT NOT NULL,
    status             TEXT NOT NULL,
    contact_email      TEXT NOT NULL,
    items              JSONB NOT NULL,
    subtotal_cents     BIGINT NOT NULL,
    tax_cents          BIGINT NOT NULL,
    delivery_fee_cents BIGINT NOT NULL,
    total_cents        BIGINT NOT NULL,
    created_at         TIMESTAMPTZ NOT NULL,
    archived_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the archive table when missing. Called once at boot.
func (a *OrderArchivePG) EnsureSchema(ctx context.Context) error {
	if a == nil || a.DB == nil {
		return errors.New("order_archive_pg: db is nil")
	}
	if _, err := a.DB.ExecContext(ctx, createOrderArchiveSQL); err != nil {
		return fmt.Errorf("order_archive_pg: ensure schema: %w", err)
	}
	return nil
}

func (a *OrderArchivePG) Archive(ctx context.Context, o *orderdom.Order) error {
	if a == nil || a.DB == nil {
		return errors.New("order_archive_pg: db is nil")
	}
	if o == nil {
		return orderdom.ErrInvalidOrder
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("order_archive_pg: marshal items: %w", err)
	}

	const q = `
INSERT INTO order_archive
    (order_id, user_id, device_id, status, contact_email, items,
     subtotal_cents, tax_cents, delivery_fee_cents, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (order_id) DO NOTHING`

	_, err = a.DB.ExecContext(ctx, q,
		o.ID, o.UserID, o.DeviceID, string(o.Status), o.Contact.Email, items,
		o.SubtotalCents, o.TaxCents, o.DeliveryFeeCents, o.TotalCents, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("order_archive_pg: insert: %w", err)
	}
	return nil
}
