package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type CommissionRepository struct {
	DB *sql.DB
}

func NewCommissionRepository(db *sql.DB) *CommissionRepository {
	return &CommissionRepository{DB: db}
}

const commissionColumns = `
	id, brand, franchise, amount_cents, reference_month, status, paid_at, notes, created_at, updated_at`

func (r *CommissionRepository) Create(ctx context.Context, c *entity.CommissionPayment) error {
	c.ID = uuid.New().String()
	query := `
		INSERT INTO commission_payments (
			id, brand, franchise, amount_cents, reference_month, status, paid_at, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Brand, c.Franchise, c.AmountCents, c.ReferenceMonth, c.Status, c.PaidAt, c.Notes)
	if err != nil {
		return fmt.Errorf("falha ao criar pagamento de comissão: %w", err)
	}
	return nil
}

func (r *CommissionRepository) Update(ctx context.Context, c *entity.CommissionPayment) error {
	query := `
		UPDATE commission_payments
		SET amount_cents = $2, reference_month = $3, status = $4, paid_at = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.AmountCents, c.ReferenceMonth, c.Status, c.PaidAt, c.Notes)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *CommissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM commission_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *CommissionRepository) FindByID(ctx context.Context, id string) (*entity.CommissionPayment, error) {
	query := `SELECT ` + commissionColumns + ` FROM commission_payments WHERE id = $1`

	var c entity.CommissionPayment
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Brand, &c.Franchise, &c.AmountCents, &c.ReferenceMonth,
		&c.Status, &c.PaidAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommissionRepository) ListByBrand(ctx context.Context, brand string) ([]entity.CommissionPayment, error) {
	query := `
		SELECT ` + commissionColumns + `
		FROM commission_payments
		WHERE ($1 = '' OR brand = $1)
		ORDER BY reference_month DESC, created_at DESC
		LIMIT 200
	`
	rows, err := r.DB.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []entity.CommissionPayment
	for rows.Next() {
		var c entity.CommissionPayment
		if err := rows.Scan(&c.ID, &c.Brand, &c.Franchise, &c.AmountCents, &c.ReferenceMonth,
			&c.Status, &c.PaidAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, c)
	}
	return payments, rows.Err()
}
