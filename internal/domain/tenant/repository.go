package tenant

import "context"

// Repository define as operações de persistência de tenants
type Repository interface {
	// FindByID busca um tenant pelo ID
	FindByID(ctx context.Context, id string) (*Tenant, error)

	// ListActive retorna todos os tenants ativos
	ListActive(ctx context.Context) ([]Tenant, error)

	// Create persiste um novo tenant
	Create(ctx context.Context, t *Tenant) error
}
