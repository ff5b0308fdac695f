package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/http/middleware"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// AdminHandler concentra as operações restritas a owner: gestão de
// perfis (aprovação, papel) e broadcast de avisos.
type AdminHandler struct {
	ProfileRepo *database.UserProfileRepository
	Producer    usecase.NotificationPublisherInterface
}

func NewAdminHandler(profileRepo *database.UserProfileRepository, producer usecase.NotificationPublisherInterface) *AdminHandler {
	return &AdminHandler{ProfileRepo: profileRepo, Producer: producer}
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	approvedOnly := r.URL.Query().Get("approved") == "true"

	profiles, err := h.ProfileRepo.List(r.Context(), approvedOnly)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}
	if profiles == nil {
		profiles = []entity.UserProfile{}
	}
	respondData(w, http.StatusOK, profiles)
}

func (h *AdminHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Approved bool `json:"approved"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	if err := h.ProfileRepo.SetApproved(r.Context(), id, input.Approved); err != nil {
		respondUsecaseError(w, err)
		return
	}

	log.WithFields(log.Fields{"user_id": id, "approved": input.Approved}).Info("✅ Perfil atualizado")
	respondData(w, http.StatusOK, map[string]interface{}{"id": id, "approved": input.Approved})
}

func (h *AdminHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Role string `json:"role"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	if !entity.ValidRole(input.Role) {
		respondError(w, http.StatusBadRequest, "papel inválido")
		return
	}

	if err := h.ProfileRepo.SetRole(r.Context(), id, input.Role); err != nil {
		respondUsecaseError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "role": input.Role})
}

type broadcastInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Body       string `json:"body" validate:"required"`
	TargetRole string `json:"target_role"` // vazio = todo mundo aprovado
}

// HandleBroadcast publica o aviso na fila; o worker faz o fan-out.
func (h *AdminHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var input broadcastInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.TargetRole != "" && !entity.ValidRole(input.TargetRole) {
		respondError(w, http.StatusBadRequest, "papel inválido")
		return
	}

	profile := middleware.ProfileFromContext(r.Context())
	event := queue.NotificationEvent{
		Type:       queue.EventAdminBroadcast,
		Title:      input.Title,
		Body:       input.Body,
		TargetRole: input.TargetRole,
		CreatedBy:  profile.ID,
	}
	if err := h.Producer.PublishNotification(r.Context(), event); err != nil {
		log.WithError(err).Error("❌ Falha ao publicar broadcast")
		respondError(w, http.StatusInternalServerError, "falha ao enfileirar notificação")
		return
	}

	log.WithField("target_role", input.TargetRole).Info("🔔 Broadcast enfileirado")
	respondData(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
