package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyDraft      = errors.New("pedido não possui itens")
	ErrInvalidQuantity = errors.New("quantidade deve ser maior que zero")
)

// Status representa o estado de um pedido persistido
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Order representa um pedido confirmado e persistido
type Order struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	ConversationID string    `json:"conversation_id"`
	Status         Status    `json:"status"`
	TotalAmount    float64   `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
	Items          []Item    `json:"order_items,omitempty"`
}

// Item representa uma linha de um pedido persistido
type Item struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// DraftItem é uma linha do rascunho de pedido acumulado durante a conversa
type DraftItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ItemTotal   float64 `json:"item_total"`
}

// Draft é o pedido em andamento de uma conversa. Não possui identidade até
// ser confirmado; sobrevive entre turnos via metadata da conversa.
// Invariante: Total == soma de ItemTotal de todos os itens.
type Draft struct {
	Items []DraftItem `json:"items"`
	Total float64     `json:"total"`
}

// NewDraftItem cria uma linha de rascunho já precificada
func NewDraftItem(productID, productName string, quantity int, unitPrice float64) (DraftItem, error) {
	if quantity <= 0 {
		return DraftItem{}, ErrInvalidQuantity
	}
	return DraftItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		ItemTotal:   unitPrice * float64(quantity),
	}, nil
}

// AddItem acrescenta uma linha ao rascunho e atualiza o total
func (d *Draft) AddItem(item DraftItem) {
	d.Items = append(d.Items, item)
	d.Total += item.ItemTotal
}

// HasItems informa se o rascunho possui ao menos um item
func (d *Draft) HasItems() bool {
	return d != nil && len(d.Items) > 0
}

// Recalculate refaz o total a partir das linhas (restaura a invariante após
// desserialização de metadata antiga ou editada manualmente)
func (d *Draft) Recalculate() {
	total := 0.0
	for _, item := range d.Items {
		total += item.ItemTotal
	}
	d.Total = total
}

// ToOrder converte o rascunho confirmado em um pedido persistível
func (d *Draft) ToOrder(tenantID, conversationID string) (*Order, error) {
	if !d.HasItems() {
		return nil, ErrEmptyDraft
	}

	orderID := uuid.New().String()
	items := make([]Item, 0, len(d.Items))
	for _, di := range d.Items {
		items = append(items, Item{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: di.ProductID,
			Quantity:  di.Quantity,
			UnitPrice: di.UnitPrice,
		})
	}

	return &Order{
		ID:             orderID,
		TenantID:       tenantID,
		ConversationID: conversationID,
		Status:         StatusPending,
		TotalAmount:    d.Total,
		CreatedAt:      time.Now(),
		Items:          items,
	}, nil
}
