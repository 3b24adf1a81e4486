package agent

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/capability"
	"github.com/hugohenrick/agente-atendimento/internal/domain/order"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/review"
	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// defaultCapabilityTimeout limita cada chamada a serviço externo de
// linguagem. Estourar o prazo conta como falha da capacidade e ativa a
// degradação do handler correspondente.
const defaultCapabilityTimeout = 25 * time.Second

// Retriever busca contexto relevante na base de conhecimento do tenant.
// Implementações degradam sozinhas: em falha retornam o texto sentinela,
// nunca erro.
type Retriever interface {
	Retrieve(ctx context.Context, tenantID, query string, topK int) string
}

// Store agrupa os repositórios consumidos pelo motor
type Store struct {
	Tenants  tenant.Repository
	Products product.Repository
	Orders   order.Repository
	Reviews  review.Repository
	Stats    stats.Repository
}

// Engine é o motor de turnos do agente. Uma instância é compartilhada entre
// requisições; todo estado mutável de conversa vive no State do turno.
type Engine struct {
	store      Store
	caps       capability.Suite
	retriever  Retriever
	logger     logger.Logger
	capTimeout time.Duration
	now        func() time.Time
	handlers   map[Intent]handlerFunc

	// locks serializa turnos concorrentes da mesma conversa. As entradas
	// nunca são removidas; o custo é um mutex por conversa viva no processo.
	locks sync.Map
}

// NewEngine cria o motor com as dependências injetadas
func NewEngine(store Store, caps capability.Suite, retriever Retriever, log logger.Logger) *Engine {
	e := &Engine{
		store:      store,
		caps:       caps,
		retriever:  retriever,
		logger:     log,
		capTimeout: defaultCapabilityTimeout,
		now:        time.Now,
	}
	e.handlers = e.routes()
	return e
}

// ProcessTurn executa o pipeline completo de um turno: classificação,
// roteamento, handler e composição da resposta. Turnos da mesma conversa
// são serializados; o estado sai sempre com uma resposta não vazia.
func (e *Engine) ProcessTurn(ctx context.Context, st *State) {
	unlock := e.lockConversation(st.ConversationID)
	defer unlock()

	e.classify(ctx, st)

	if err := e.route(st.Intent)(ctx, st); err != nil {
		e.logger.Error("turn handler failed",
			"conversation_id", st.ConversationID,
			"intent", string(st.Intent),
			"error", err)
		st.FinalResponse = handlerFailureReply(st.UserName())
		st.RequiresConfirmation = false
	}

	e.respond(ctx, st)
}

// lockConversation adquire o mutex da conversa e devolve a função de
// liberação
func (e *Engine) lockConversation(conversationID string) func() {
	actual, _ := e.locks.LoadOrStore(conversationID, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// capContext deriva o contexto com prazo para chamadas de capacidade
func (e *Engine) capContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.capTimeout)
}

// handleOther não faz nada: a intenção "other" é resolvida inteiramente
// pelo compositor de respostas
func (e *Engine) handleOther(_ context.Context, _ *State) error {
	return nil
}

// handlerFailureReply é a resposta genérica quando um handler falha
func handlerFailureReply(userName string) string {
	if userName != "" {
		return "Lo siento, " + userName + ", tuve un problema procesando tu mensaje. " +
			"¿Podrías intentarlo de nuevo?"
	}
	return "I apologize, but I encountered an issue processing your message. " +
		"Please try again or contact us directly for assistance."
}
