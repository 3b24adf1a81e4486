package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/user"
)

var ErrUserNotFound = errors.New("usuário não encontrado")

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{db: db}
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	var prefsJSON []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), preferences, is_active, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &prefsJSON, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	u.Preferences = map[string]string{}
	if len(prefsJSON) > 0 {
		if err := json.Unmarshal(prefsJSON, &u.Preferences); err != nil {
			return nil, fmt.Errorf("erro ao decodificar preferências: %w", err)
		}
	}
	return &u, nil
}

// ListActive implementa user.Repository.ListActive
func (r *UserRepository) ListActive(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), preferences, is_active, created_at
		FROM users
		WHERE is_active = true
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var prefsJSON []byte
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &prefsJSON, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		u.Preferences = map[string]string{}
		if len(prefsJSON) > 0 {
			if err := json.Unmarshal(prefsJSON, &u.Preferences); err != nil {
				return nil, fmt.Errorf("erro ao decodificar preferências: %w", err)
			}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return users, nil
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	prefsJSON, err := json.Marshal(u.Preferences)
	if err != nil {
		return fmt.Errorf("erro ao serializar preferências: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, preferences, is_active, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`, u.ID, u.Name, u.Email, u.Phone, prefsJSON, u.IsActive, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

// ListPreferences implementa user.Repository.ListPreferences
func (r *UserRepository) ListPreferences(ctx context.Context, userID, tenantID string) ([]user.Preference, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, tenant_id, preference_type, preference_value, confidence, learned_from_count, updated_at
		FROM user_preferences
		WHERE user_id = $1 AND ($2 = '' OR tenant_id::text = $2)
		ORDER BY confidence DESC
	`, userID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar preferências: %w", err)
	}
	defer rows.Close()

	var prefs []user.Preference
	for rows.Next() {
		var p user.Preference
		if err := rows.Scan(&p.ID, &p.UserID, &p.TenantID, &p.PreferenceType, &p.PreferenceValue, &p.Confidence, &p.LearnedFromCount, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler preferência: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return prefs, nil
}

// UpsertPreference implementa user.Repository.UpsertPreference. Preferência
// já conhecida é reforçada; nova entra com a confiança inicial informada.
func (r *UserRepository) UpsertPreference(ctx context.Context, userID, tenantID, prefType, prefValue string, confidence float64) (*user.Preference, error) {
	var existing user.Preference
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, tenant_id, preference_type, preference_value, confidence, learned_from_count, updated_at
		FROM user_preferences
		WHERE user_id = $1 AND tenant_id = $2 AND preference_type = $3 AND preference_value = $4
	`, userID, tenantID, prefType, prefValue).Scan(
		&existing.ID, &existing.UserID, &existing.TenantID, &existing.PreferenceType,
		&existing.PreferenceValue, &existing.Confidence, &existing.LearnedFromCount, &existing.UpdatedAt)

	if err == nil {
		existing.Reinforce()
		_, err = r.db.Exec(ctx, `
			UPDATE user_preferences
			SET confidence = $2, learned_from_count = $3, updated_at = $4
			WHERE id = $1
		`, existing.ID, existing.Confidence, existing.LearnedFromCount, existing.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao reforçar preferência: %w", err)
		}
		return &existing, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("erro ao buscar preferência: %w", err)
	}

	p := user.Preference{
		ID:               uuid.New().String(),
		UserID:           userID,
		TenantID:         tenantID,
		PreferenceType:   prefType,
		PreferenceValue:  prefValue,
		Confidence:       confidence,
		LearnedFromCount: 1,
		UpdatedAt:        time.Now(),
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO user_preferences (id, user_id, tenant_id, preference_type, preference_value, confidence, learned_from_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.UserID, p.TenantID, p.PreferenceType, p.PreferenceValue, p.Confidence, p.LearnedFromCount, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar preferência: %w", err)
	}
	return &p, nil
}
