package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
)

// NotificationHandler serve o sininho: cada usuário só enxerga (e só
// marca como lida) a própria entrega.
type NotificationHandler struct {
	Repo *database.NotificationRepository
}

func NewNotificationHandler(repo *database.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "true"

	items, err := h.Repo.ListForUser(r.Context(), profile.ID, unreadOnly)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if items == nil {
		items = []entity.UserNotification{}
	}
	respondData(w, http.StatusOK, items)
}

func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Repo.MarkRead(r.Context(), id, profile.ID); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "status": "read"})
}
