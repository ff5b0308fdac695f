package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hudlab/hudlab-ops/internal/entity"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Broadcast grava a notificação e uma entrega por usuário numa
// transação só. O fan-out roda no worker da fila, então um broadcast
// grande não segura request HTTP nenhum.
func (r *NotificationRepository) Broadcast(ctx context.Context, n *entity.Notification, userIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	n.ID = uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO notifications (id, title, body, target_role, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, n.ID, n.Title, n.Body, n.TargetRole, n.CreatedBy)
	if err != nil {
		return fmt.Errorf("falha ao criar notificação: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO user_notifications (id, notification_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, userID := range userIDs {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), n.ID, userID); err != nil {
			return fmt.Errorf("falha no fan-out para %s: %w", userID, err)
		}
	}

	return tx.Commit()
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]entity.UserNotification, error) {
	query := `
		SELECT un.id, un.notification_id, un.user_id, n.title, n.body, un.read_at, un.created_at
		FROM user_notifications un
		JOIN notifications n ON n.id = un.notification_id
		WHERE un.user_id = $1
		  AND ($2 = false OR un.read_at IS NULL)
		ORDER BY un.created_at DESC
		LIMIT 100
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.UserNotification
	for rows.Next() {
		var un entity.UserNotification
		if err := rows.Scan(&un.ID, &un.NotificationID, &un.UserID, &un.Title, &un.Body, &un.ReadAt, &un.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, un)
	}
	return items, rows.Err()
}

// MarkRead só marca entrega do próprio usuário — nada de marcar dos outros.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	query := `
		UPDATE user_notifications
		SET read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
