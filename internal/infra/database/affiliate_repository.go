package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type AffiliateRepository struct {
	DB *sql.DB
}

func NewAffiliateRepository(db *sql.DB) *AffiliateRepository {
	return &AffiliateRepository{DB: db}
}

func (r *AffiliateRepository) Create(ctx context.Context, l *entity.AffiliateLink) error {
	l.ID = uuid.New().String()
	query := `
		INSERT INTO affiliate_links (id, brand, url, utm_source, utm_medium, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query, l.ID, l.Brand, l.URL, l.UtmSource, l.UtmMedium, l.CreatedBy)
	return err
}

func (r *AffiliateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM affiliate_links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *AffiliateRepository) ListByBrand(ctx context.Context, brand string) ([]entity.AffiliateLink, error) {
	query := `
		SELECT id, brand, url, utm_source, utm_medium, created_by, created_at
		FROM affiliate_links
		WHERE ($1 = '' OR brand = $1)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []entity.AffiliateLink
	for rows.Next() {
		var l entity.AffiliateLink
		if err := rows.Scan(&l.ID, &l.Brand, &l.URL, &l.UtmSource, &l.UtmMedium, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
