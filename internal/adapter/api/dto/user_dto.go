package dto

import (
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/user"
)

// UserResponse representa um usuário na API
type UserResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	Preferences map[string]string `json:"preferences"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PreferenceResponse representa uma preferência aprendida de um usuário
type PreferenceResponse struct {
	TenantID         string    `json:"tenant_id"`
	PreferenceType   string    `json:"preference_type"`
	PreferenceValue  string    `json:"preference_value"`
	Confidence       float64   `json:"confidence"`
	LearnedFromCount int       `json:"learned_from_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ConversationSummaryResponse resume uma conversa de um usuário
type ConversationSummaryResponse struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Channel   string     `json:"channel"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// OrderItemResponse representa uma linha de pedido na API
type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse representa um pedido na API
type OrderResponse struct {
	ID             string              `json:"id"`
	TenantID       string              `json:"tenant_id"`
	ConversationID string              `json:"conversation_id"`
	Status         string              `json:"status"`
	TotalAmount    float64             `json:"total_amount"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToUserResponse converte um usuário de domínio para o DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Preferences: u.Preferences,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserResponseList converte uma lista de usuários de domínio
func ToUserResponseList(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

// ToPreferenceResponseList converte as preferências aprendidas do domínio
func ToPreferenceResponseList(prefs []user.Preference) []PreferenceResponse {
	out := make([]PreferenceResponse, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, PreferenceResponse{
			TenantID:         p.TenantID,
			PreferenceType:   p.PreferenceType,
			PreferenceValue:  p.PreferenceValue,
			Confidence:       p.Confidence,
			LearnedFromCount: p.LearnedFromCount,
			UpdatedAt:        p.UpdatedAt,
		})
	}
	return out
}

// ToConversationSummaryList converte conversas do domínio
func ToConversationSummaryList(convs []conversation.Conversation) []ConversationSummaryResponse {
	out := make([]ConversationSummaryResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, ConversationSummaryResponse{
			ID:        c.ID,
			TenantID:  c.TenantID,
			Channel:   c.Channel,
			StartedAt: c.StartedAt,
			EndedAt:   c.EndedAt,
		})
	}
	return out
}

// ToOrderResponseList converte pedidos do domínio
func ToOrderResponseList(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderItemResponse{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		out = append(out, OrderResponse{
			ID:             o.ID,
			TenantID:       o.TenantID,
			ConversationID: o.ConversationID,
			Status:         string(o.Status),
			TotalAmount:    o.TotalAmount,
			Items:          items,
			CreatedAt:      o.CreatedAt,
		})
	}
	return out
}
