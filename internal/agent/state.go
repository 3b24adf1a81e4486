// Package agent implementa o motor de processamento de turnos do chatbot de
// atendimento: classificação de intenção, roteamento para handlers,
// negociação de pedidos multi-turno, validações de negócio e composição da
// resposta final. Cada turno processa exatamente uma mensagem do cliente
// contra o estado acumulado da conversa.
package agent

import (
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
)

// Intent é a intenção classificada de uma mensagem do cliente
type Intent string

const (
	IntentFAQ         Intent = "faq"
	IntentOrderCreate Intent = "order_create"
	IntentOrderUpdate Intent = "order_update"
	IntentComplaint   Intent = "complaint"
	IntentReview      Intent = "review"
	IntentOther       Intent = "other"
)

// validIntents é o conjunto fechado aceito do classificador; qualquer outro
// rótulo é normalizado para "other"
var validIntents = map[Intent]bool{
	IntentFAQ:         true,
	IntentOrderCreate: true,
	IntentOrderUpdate: true,
	IntentComplaint:   true,
	IntentReview:      true,
	IntentOther:       true,
}

// NormalizeIntent valida o rótulo devolvido pelo classificador
func NormalizeIntent(label string) Intent {
	intent := Intent(label)
	if !validIntents[intent] {
		return IntentOther
	}
	return intent
}

// Message é uma mensagem da conversa vista pelo motor. Apenas a última é
// lida pelos handlers; o histórico completo é responsabilidade do store.
type Message struct {
	Sender string
	Text   string
}

// UserContext é o contexto de personalização fornecido pelo chamador.
// O motor nunca escreve nele.
type UserContext struct {
	UserID              string
	FirstName           string
	FullName            string
	IsReturningCustomer bool
	ConversationCount   int
	RecentOrders        []order.Order
	Preferences         []PreferenceHint
}

// PreferenceHint é uma preferência aprendida resumida para personalização
type PreferenceHint struct {
	Type       string
	Value      string
	Confidence float64
}

// ConversationContext é o resumo do estado da conversa atualizado pelo
// classificador a cada turno, para consumo dos handlers e persistência
type ConversationContext struct {
	LastIntent     Intent
	HasActiveOrder bool
}

// State é o estado de um turno de conversa. Construído pelo chamador,
// mutado ao longo do pipeline e persistido ao final.
type State struct {
	TenantID       string
	ConversationID string
	Messages       []Message

	// Intent é definido exatamente uma vez por turno, pelo classificador
	Intent Intent

	// Context guarda o contexto recuperado pela busca de conhecimento
	Context string

	// OrderDraft é o pedido em andamento; nil quando não há pedido
	OrderDraft *order.Draft

	// RequiresConfirmation indica que a resposta pede um sim/não explícito
	// antes de materializar ou descartar o rascunho
	RequiresConfirmation bool

	// FinalResponse é o texto devolvido ao cliente; o compositor de
	// respostas garante que nunca termina vazio
	FinalResponse string

	UserContext         *UserContext
	ConversationContext ConversationContext
}

// LastMessage retorna o texto da última mensagem do turno, ou "" se não há
// mensagens
func (s *State) LastMessage() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Text
}

// HasActiveOrder informa se existe um rascunho de pedido com itens
func (s *State) HasActiveOrder() bool {
	return s.OrderDraft.HasItems()
}

// UserName retorna o primeiro nome do cliente para personalização, ou ""
func (s *State) UserName() string {
	if s.UserContext == nil {
		return ""
	}
	return s.UserContext.FirstName
}
