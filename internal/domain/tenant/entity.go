package tenant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("nome não pode ser vazio")
	ErrInvalidType     = errors.New("tipo de negócio inválido")
	ErrTenantNotActive = errors.New("tenant não está ativo")
)

// Type representa o tipo de negócio atendido pelo agente
type Type string

const (
	TypeRestaurant Type = "restaurant"
	TypeBakery     Type = "bakery"
	TypeMinimarket Type = "minimarket"
)

// BusinessHours mapeia o dia da semana (em inglês, minúsculo: "monday"...)
// para o horário de funcionamento. O valor pode ser "closed", um intervalo
// "HH:MM-HH:MM" ou múltiplos intervalos separados por vírgula para turnos
// partidos ("08:00-12:00,14:00-20:00").
type BusinessHours map[string]string

// Config guarda a configuração por tenant persistida como JSONB
type Config struct {
	BusinessHours BusinessHours `json:"business_hours"`
	Tone          string        `json:"tone,omitempty"`
}

// Tenant representa um negócio no sistema multi-tenant. Todos os dados de
// produtos, conversas, pedidos e reviews são isolados por tenant.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Timezone  string    `json:"timezone"`
	Config    Config    `json:"config"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenant cria um novo tenant ativo
func NewTenant(name string, businessType Type, timezone string, config Config) (*Tenant, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	switch businessType {
	case TypeRestaurant, TypeBakery, TypeMinimarket:
	default:
		return nil, ErrInvalidType
	}

	if timezone == "" {
		timezone = "UTC"
	}

	return &Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      businessType,
		Timezone:  timezone,
		Config:    config,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// HoursFor retorna o horário configurado para o dia informado ("monday"...).
// Dias sem configuração são tratados como fechados.
func (t *Tenant) HoursFor(day string) string {
	if t.Config.BusinessHours == nil {
		return "closed"
	}
	hours, ok := t.Config.BusinessHours[day]
	if !ok || hours == "" {
		return "closed"
	}
	return hours
}

// Location resolve o fuso horário do tenant; cai para UTC se inválido
func (t *Tenant) Location() *time.Location {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
