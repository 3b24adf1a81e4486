package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
)

// ConversationRepository implementa a interface conversation.Repository
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository cria uma nova instância de ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) conversation.Repository {
	return &ConversationRepository{db: db}
}

// Create implementa conversation.Repository.Create
func (r *ConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	metadataJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("erro ao serializar metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO conversations (id, tenant_id, user_id, customer_id, channel, metadata, started_at, ended_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8)
	`, c.ID, c.TenantID, c.UserID, c.CustomerID, c.Channel, metadataJSON, c.StartedAt, c.EndedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar conversa: %w", err)
	}
	return nil
}

// FindByID implementa conversation.Repository.FindByID
func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*conversation.Conversation, error) {
	var c conversation.Conversation
	var userID, customerID *string
	var metadataJSON []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, tenant_id, user_id, customer_id, channel, metadata, started_at, ended_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.TenantID, &userID, &customerID, &c.Channel, &metadataJSON, &c.StartedAt, &c.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, conversation.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar conversa: %w", err)
	}

	if userID != nil {
		c.UserID = *userID
	}
	if customerID != nil {
		c.CustomerID = *customerID
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &c.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao decodificar metadata: %w", err)
		}
	}
	return &c, nil
}

// UpdateMetadata implementa conversation.Repository.UpdateMetadata
func (r *ConversationRepository) UpdateMetadata(ctx context.Context, id string, metadata conversation.Metadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("erro ao serializar metadata: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE conversations SET metadata = $2 WHERE id = $1
	`, id, metadataJSON)
	if err != nil {
		return fmt.Errorf("erro ao atualizar metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return conversation.ErrNotFound
	}
	return nil
}

// AddMessage implementa conversation.Repository.AddMessage
func (r *ConversationRepository) AddMessage(ctx context.Context, m *conversation.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender, text, intent, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`, m.ID, m.ConversationID, m.Sender, m.Text, m.Intent, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao salvar mensagem: %w", err)
	}
	return nil
}

// ListMessages implementa conversation.Repository.ListMessages
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, conversation_id, sender, text, COALESCE(intent, ''), created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar mensagens: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListByUser implementa conversation.Repository.ListByUser
func (r *ConversationRepository) ListByUser(ctx context.Context, userID, tenantID string, limit int) ([]conversation.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, COALESCE(user_id::text, ''), COALESCE(customer_id::text, ''), channel, metadata, started_at, ended_at
		FROM conversations
		WHERE user_id = $1 AND ($2 = '' OR tenant_id::text = $2)
		ORDER BY started_at DESC
		LIMIT $3
	`, userID, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar conversas: %w", err)
	}
	defer rows.Close()

	var conversations []conversation.Conversation
	for rows.Next() {
		var c conversation.Conversation
		var metadataJSON []byte
		if err := rows.Scan(&c.ID, &c.TenantID, &c.UserID, &c.CustomerID, &c.Channel, &metadataJSON, &c.StartedAt, &c.EndedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler conversa: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &c.Metadata); err != nil {
				return nil, fmt.Errorf("erro ao decodificar metadata: %w", err)
			}
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return conversations, nil
}

// ListMessagesByIntent implementa conversation.Repository.ListMessagesByIntent
func (r *ConversationRepository) ListMessagesByIntent(ctx context.Context, tenantID string, intents []string) ([]conversation.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender, m.text, COALESCE(m.intent, ''), m.created_at
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.tenant_id = $1 AND m.intent = ANY($2)
		ORDER BY m.created_at
	`, tenantID, intents)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar mensagens por intenção: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListUserMessages implementa conversation.Repository.ListUserMessages
func (r *ConversationRepository) ListUserMessages(ctx context.Context, tenantID string) ([]conversation.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender, m.text, COALESCE(m.intent, ''), m.created_at
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.tenant_id = $1 AND m.sender = 'user'
		ORDER BY m.created_at
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar mensagens de clientes: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// CountUserMessagesBetween implementa conversation.Repository.CountUserMessagesBetween
func (r *ConversationRepository) CountUserMessagesBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.tenant_id = $1 AND m.sender = 'user' AND m.created_at >= $2 AND m.created_at < $3
	`, tenantID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar mensagens: %w", err)
	}
	return count, nil
}

// ListMessagesByIntentBetween implementa conversation.Repository.ListMessagesByIntentBetween
func (r *ConversationRepository) ListMessagesByIntentBetween(ctx context.Context, tenantID string, intents []string, from, to time.Time) ([]conversation.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender, m.text, COALESCE(m.intent, ''), m.created_at
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.tenant_id = $1 AND m.intent = ANY($2) AND m.created_at >= $3 AND m.created_at < $4
		ORDER BY m.created_at
	`, tenantID, intents, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar mensagens por intenção: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]conversation.Message, error) {
	var messages []conversation.Message
	for rows.Next() {
		var m conversation.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Text, &m.Intent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler mensagem: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	return messages, nil
}
