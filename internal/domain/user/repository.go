package user

import "context"

// Repository define as operações de persistência de usuários e preferências
type Repository interface {
	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// ListActive retorna todos os usuários ativos
	ListActive(ctx context.Context) ([]User, error)

	// Create persiste um novo usuário
	Create(ctx context.Context, u *User) error

	// ListPreferences retorna as preferências aprendidas do usuário,
	// opcionalmente filtradas por tenant, mais confiáveis primeiro
	ListPreferences(ctx context.Context, userID, tenantID string) ([]Preference, error)

	// UpsertPreference cria a preferência ou reforça uma existente
	UpsertPreference(ctx context.Context, userID, tenantID, prefType, prefValue string, confidence float64) (*Preference, error)
}
