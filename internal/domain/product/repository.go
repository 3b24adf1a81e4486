package product

import "context"

// Repository define as operações de persistência de produtos e estoque
type Repository interface {
	// ListActive retorna os produtos ativos do tenant
	ListActive(ctx context.Context, tenantID string) ([]Product, error)

	// FindInventory busca o item de estoque de um produto do tenant.
	// Retorna nil (sem erro) quando o produto não tem registro de estoque.
	FindInventory(ctx context.Context, tenantID, productID string) (*InventoryItem, error)

	// Create persiste um novo produto
	Create(ctx context.Context, p *Product) error

	// UpsertInventory cria ou atualiza o estoque de um produto
	UpsertInventory(ctx context.Context, item *InventoryItem) error
}
