package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type ContractRepository struct {
	DB *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{DB: db}
}

const contractColumns = `
	id, brand, franchise, commission_percent, starts_at, ends_at, terms, active, created_at, updated_at`

func (r *ContractRepository) Create(ctx context.Context, c *entity.PartnershipContract) error {
	c.ID = uuid.New().String()
	query := `
		INSERT INTO partnership_contracts (
			id, brand, franchise, commission_percent, starts_at, ends_at, terms, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.Brand, c.Franchise, c.CommissionPercent, c.StartsAt, c.EndsAt, c.Terms, c.Active)
	return err
}

func (r *ContractRepository) Update(ctx context.Context, c *entity.PartnershipContract) error {
	query := `
		UPDATE partnership_contracts
		SET commission_percent = $2, starts_at = $3, ends_at = $4, terms = $5, active = $6, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.CommissionPercent, c.StartsAt, c.EndsAt, c.Terms, c.Active)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM partnership_contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ContractRepository) FindByID(ctx context.Context, id string) (*entity.PartnershipContract, error) {
	query := `SELECT ` + contractColumns + ` FROM partnership_contracts WHERE id = $1`

	var c entity.PartnershipContract
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Brand, &c.Franchise, &c.CommissionPercent, &c.StartsAt, &c.EndsAt,
		&c.Terms, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) ListByBrand(ctx context.Context, brand string) ([]entity.PartnershipContract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM partnership_contracts
		WHERE ($1 = '' OR brand = $1)
		ORDER BY starts_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []entity.PartnershipContract
	for rows.Next() {
		var c entity.PartnershipContract
		if err := rows.Scan(&c.ID, &c.Brand, &c.Franchise, &c.CommissionPercent, &c.StartsAt, &c.EndsAt,
			&c.Terms, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}
