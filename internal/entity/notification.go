package entity

import "time"

// Notification é o aviso em si; UserNotification é a entrega por usuário.
// O fan-out (uma UserNotification por usuário do papel alvo) acontece
// de forma assíncrona no worker da fila.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	TargetRole *string   `json:"target_role"` // nil = broadcast geral
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserNotification struct {
	ID             string     `json:"id"`
	NotificationID string     `json:"notification_id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
