package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

type UserProfileRepository struct {
	DB *sql.DB
}

func NewUserProfileRepository(db *sql.DB) *UserProfileRepository {
	return &UserProfileRepository{DB: db}
}

const profileColumns = `id, email, role, approved, assigned_brand, created_at, updated_at`

func (r *UserProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`

	var p entity.UserProfile
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.Role, &p.Approved, &p.AssignedBrand, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List devolve perfis; approvedOnly=false inclui pendentes (tela de aprovação).
func (r *UserProfileRepository) List(ctx context.Context, approvedOnly bool) ([]entity.UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE ($1 = false OR approved = true)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, approvedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []entity.UserProfile
	for rows.Next() {
		var p entity.UserProfile
		if err := rows.Scan(&p.ID, &p.Email, &p.Role, &p.Approved, &p.AssignedBrand, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// ListIDsByRole alimenta o fan-out de notificações.
// role vazio = todos os aprovados.
func (r *UserProfileRepository) ListIDsByRole(ctx context.Context, role string) ([]string, error) {
	query := `
		SELECT id FROM user_profiles
		WHERE approved = true AND ($1 = '' OR role = $1)
	`
	rows, err := r.DB.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserProfileRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	query := `UPDATE user_profiles SET approved = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, approved)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *UserProfileRepository) SetRole(ctx context.Context, id, role string) error {
	query := `UPDATE user_profiles SET role = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, role)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
