package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type PixKeyRepository struct {
	DB *sql.DB
}

func NewPixKeyRepository(db *sql.DB) *PixKeyRepository {
	return &PixKeyRepository{DB: db}
}

func (r *PixKeyRepository) Create(ctx context.Context, k *entity.PixKey) error {
	k.ID = uuid.New().String()
	query := `
		INSERT INTO partner_pix_keys (id, brand, franchise, key_type, key_value, holder_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.DB.ExecContext(ctx, query, k.ID, k.Brand, k.Franchise, k.KeyType, k.KeyValue, k.HolderName)
	return err
}

func (r *PixKeyRepository) Update(ctx context.Context, k *entity.PixKey) error {
	query := `
		UPDATE partner_pix_keys
		SET key_type = $2, key_value = $3, holder_name = $4, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, k.ID, k.KeyType, k.KeyValue, k.HolderName)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *PixKeyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM partner_pix_keys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *PixKeyRepository) FindByID(ctx context.Context, id string) (*entity.PixKey, error) {
	query := `
		SELECT id, brand, franchise, key_type, key_value, holder_name, created_at, updated_at
		FROM partner_pix_keys WHERE id = $1
	`
	var k entity.PixKey
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&k.ID, &k.Brand, &k.Franchise, &k.KeyType, &k.KeyValue, &k.HolderName, &k.CreatedAt, &k.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *PixKeyRepository) ListByBrand(ctx context.Context, brand string) ([]entity.PixKey, error) {
	query := `
		SELECT id, brand, franchise, key_type, key_value, holder_name, created_at, updated_at
		FROM partner_pix_keys
		WHERE ($1 = '' OR brand = $1)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []entity.PixKey
	for rows.Next() {
		var k entity.PixKey
		if err := rows.Scan(&k.ID, &k.Brand, &k.Franchise, &k.KeyType, &k.KeyValue, &k.HolderName, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
