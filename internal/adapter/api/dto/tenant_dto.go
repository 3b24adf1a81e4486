package dto

import (
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

// TenantResponse representa um tenant na API
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTenantResponse converte um tenant de domínio para o DTO de resposta
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      string(t.Type),
		Timezone:  t.Timezone,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

// ToTenantResponseList converte uma lista de tenants de domínio
func ToTenantResponseList(tenants []tenant.Tenant) []TenantResponse {
	out := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		out = append(out, ToTenantResponse(&tenants[i]))
	}
	return out
}
