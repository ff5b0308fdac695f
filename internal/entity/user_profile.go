package entity

import (
	"strings"
	"time"
)

// Papéis reconhecidos pelo guard de autorização.
const (
	RoleOwner         = "owner"
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RolePartnersMedia = "partners-media"
	RoleUser          = "user"
)

// UserProfile estende a identidade do Supabase Auth (tabela user_profiles).
// Acesso só é liberado com approved=true; partners-media enxerga apenas
// a marca em assigned_brand.
type UserProfile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Approved      bool      `json:"approved"`
	AssignedBrand *string   `json:"assigned_brand"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CanSeeBrand diz se o perfil pode operar sobre a marca informada.
func (p *UserProfile) CanSeeBrand(brand string) bool {
	if p.Role != RolePartnersMedia {
		return true
	}
	// marcas vêm de formulário, a comparação ignora caixa
	return p.AssignedBrand != nil && strings.EqualFold(*p.AssignedBrand, brand)
}

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RolePartnersMedia, RoleUser:
		return true
	}
	return false
}
