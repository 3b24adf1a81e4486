package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("nome do produto não pode ser vazio")
	ErrInvalidPrice = errors.New("preço do produto não pode ser negativo")
)

// Product representa um item do catálogo de um tenant
type Product struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProduct cria um novo produto ativo para o tenant
func NewProduct(tenantID, name, description, category string, price float64) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	return &Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

// InventoryItem representa o estoque disponível de um produto
type InventoryItem struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	ProductID     string    `json:"product_id"`
	StockQuantity int       `json:"stock_quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasStock verifica se há estoque suficiente para a quantidade solicitada
func (i *InventoryItem) HasStock(quantity int) bool {
	return i.StockQuantity >= quantity
}
