package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{db: db}
}

// ListActive implementa product.Repository.ListActive
func (r *ProductRepository) ListActive(ctx context.Context, tenantID string) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, name, description, category, price, is_active, created_at
		FROM products
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY category, name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Category, &p.Price, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return products, nil
}

// FindInventory implementa product.Repository.FindInventory. Produto sem
// registro de estoque retorna nil sem erro.
func (r *ProductRepository) FindInventory(ctx context.Context, tenantID, productID string) (*product.InventoryItem, error) {
	var item product.InventoryItem

	err := r.db.QueryRow(ctx, `
		SELECT id, tenant_id, product_id, stock_quantity, updated_at
		FROM inventory_items
		WHERE tenant_id = $1 AND product_id = $2
	`, tenantID, productID).Scan(&item.ID, &item.TenantID, &item.ProductID, &item.StockQuantity, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar estoque: %w", err)
	}
	return &item, nil
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, tenant_id, name, description, category, price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.TenantID, p.Name, p.Description, p.Category, p.Price, p.IsActive, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

// UpsertInventory implementa product.Repository.UpsertInventory
func (r *ProductRepository) UpsertInventory(ctx context.Context, item *product.InventoryItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_items (id, tenant_id, product_id, stock_quantity, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tenant_id, product_id)
		DO UPDATE SET stock_quantity = EXCLUDED.stock_quantity, updated_at = NOW()
	`, item.ID, item.TenantID, item.ProductID, item.StockQuantity)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	return nil
}
