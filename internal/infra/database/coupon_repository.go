package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

type CouponRepository struct {
	DB *sql.DB
}

func NewCouponRepository(db *sql.DB) *CouponRepository {
	return &CouponRepository{DB: db}
}

const couponColumns = `
	id, code, percentage, brand, franchise, valid_from, valid_until, max_uses,
	active, nuvemshop_coupon_id, nuvemshop_status, nuvemshop_error, created_by, created_at`

func (r *CouponRepository) Create(ctx context.Context, c *entity.Coupon) error {
	query := `
		INSERT INTO generated_coupons (
			id, code, percentage, brand, franchise, valid_from, valid_until,
			max_uses, active, nuvemshop_status, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, 'pending', $9, NOW())
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Code, c.Percentage, c.Brand, c.Franchise,
		c.ValidFrom, c.ValidUntil, c.MaxUses, c.CreatedBy)
	if isUniqueViolation(err) {
		return entity.ErrCouponConflict
	}
	if err != nil {
		return fmt.Errorf("falha ao criar cupom: %w", err)
	}
	return nil
}

// HasActiveForBrand implementa o invariante soft de um cupom ativo
// por marca (ou por marca+franquia quando a marca tem franquias).
func (r *CouponRepository) HasActiveForBrand(ctx context.Context, brand string, franchise *string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM generated_coupons
			WHERE brand = $1
			  AND active = true
			  AND valid_until >= NOW()
			  AND (franchise IS NOT DISTINCT FROM $2)
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, brand, franchise).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MarkMirrorCreated espelha o resultado da criação remota na Nuvemshop.
func (r *CouponRepository) MarkMirrorCreated(ctx context.Context, id, remoteID string) error {
	query := `
		UPDATE generated_coupons
		SET nuvemshop_coupon_id = $2, nuvemshop_status = 'created', nuvemshop_error = NULL
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, remoteID)
	return err
}

func (r *CouponRepository) MarkMirrorError(ctx context.Context, id, errMsg string) error {
	query := `
		UPDATE generated_coupons
		SET nuvemshop_status = 'error', nuvemshop_error = $2
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, errMsg)
	return err
}

func (r *CouponRepository) FindByID(ctx context.Context, id string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM generated_coupons WHERE id = $1`

	var c entity.Coupon
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Code, &c.Percentage, &c.Brand, &c.Franchise, &c.ValidFrom, &c.ValidUntil,
		&c.MaxUses, &c.Active, &c.NuvemshopCouponID, &c.NuvemshopStatus, &c.NuvemshopError,
		&c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List devolve cupons, opcionalmente filtrados por marca (partners-media
// só enxerga a marca atribuída — quem filtra é o handler via guard).
func (r *CouponRepository) List(ctx context.Context, brand string) ([]entity.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM generated_coupons
		WHERE ($1 = '' OR brand = $1)
		ORDER BY created_at DESC
		LIMIT 200
	`
	rows, err := r.DB.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []entity.Coupon
	for rows.Next() {
		var c entity.Coupon
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Percentage, &c.Brand, &c.Franchise, &c.ValidFrom, &c.ValidUntil,
			&c.MaxUses, &c.Active, &c.NuvemshopCouponID, &c.NuvemshopStatus, &c.NuvemshopError,
			&c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}
