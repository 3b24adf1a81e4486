package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName  = errors.New("nome do usuário não pode ser vazio")
	ErrEmptyEmail = errors.New("email do usuário não pode ser vazio")
)

// User representa um cliente final conhecido da plataforma, compartilhado
// entre tenants e usado para personalização das respostas
type User struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	Preferences map[string]string `json:"preferences"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewUser cria um novo usuário ativo
func NewUser(name, email, phone string) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	return &User{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Preferences: map[string]string{},
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

// FirstName retorna o primeiro nome do usuário, usado nas respostas
func (u *User) FirstName() string {
	parts := strings.Fields(u.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// Preference representa uma preferência aprendida de um usuário em um
// tenant. A confiança cresce com observações repetidas.
type Preference struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	TenantID         string    `json:"tenant_id"`
	PreferenceType   string    `json:"preference_type"`
	PreferenceValue  string    `json:"preference_value"`
	Confidence       float64   `json:"confidence"`
	LearnedFromCount int       `json:"learned_from_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Reinforce registra uma nova observação da preferência, aumentando a
// confiança com teto em 0.95
func (p *Preference) Reinforce() {
	p.LearnedFromCount++
	confidence := p.Confidence + float64(p.LearnedFromCount)*0.05
	if confidence > 0.95 {
		confidence = 0.95
	}
	p.Confidence = confidence
	p.UpdatedAt = time.Now()
}
