// Package repository contém as implementações PostgreSQL (pgx) dos
// repositórios de domínio. Cada repositório recebe o pool compartilhado e
// expõe a interface do pacote de domínio correspondente.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

var ErrTenantNotFound = errors.New("tenant não encontrado")

// TenantRepository implementa a interface tenant.Repository
type TenantRepository struct {
	db *pgxpool.Pool
}

// NewTenantRepository cria uma nova instância de TenantRepository
func NewTenantRepository(db *pgxpool.Pool) tenant.Repository {
	return &TenantRepository{db: db}
}

// FindByID implementa tenant.Repository.FindByID
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var configJSON []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, name, type, timezone, config, is_active, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Type, &t.Timezone, &configJSON, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tenant: %w", err)
	}

	if len(configJSON) > 0 {
		if err := json.Unmarshal(configJSON, &t.Config); err != nil {
			return nil, fmt.Errorf("erro ao decodificar config do tenant: %w", err)
		}
	}
	return &t, nil
}

// ListActive implementa tenant.Repository.ListActive
func (r *TenantRepository) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, timezone, config, is_active, created_at, updated_at
		FROM tenants
		WHERE is_active = true
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		var configJSON []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Timezone, &configJSON, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler tenant: %w", err)
		}
		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &t.Config); err != nil {
				return nil, fmt.Errorf("erro ao decodificar config do tenant: %w", err)
			}
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return tenants, nil
}

// Create implementa tenant.Repository.Create
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	configJSON, err := json.Marshal(t.Config)
	if err != nil {
		return fmt.Errorf("erro ao serializar config do tenant: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO tenants (id, name, type, timezone, config, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.Name, t.Type, t.Timezone, configJSON, t.IsActive, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar tenant: %w", err)
	}
	return nil
}
