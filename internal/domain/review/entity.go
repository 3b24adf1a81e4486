package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyComment = errors.New("comentário da avaliação não pode ser vazio")

// Review representa uma avaliação ou reclamação deixada em uma conversa.
// Reviews são append-only: uma conversa pode acumular várias.
type Review struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	ConversationID    string    `json:"conversation_id"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment"`
	Source            string    `json:"source"`
	RequiresAttention bool      `json:"requires_attention"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewReview cria uma avaliação com a nota limitada ao intervalo [1,5]
func NewReview(tenantID, conversationID string, rating int, comment, source string, requiresAttention bool) (*Review, error) {
	if comment == "" {
		return nil, ErrEmptyComment
	}

	if rating < 1 {
		rating = 1
	} else if rating > 5 {
		rating = 5
	}

	if source == "" {
		source = "chat"
	}

	return &Review{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		ConversationID:    conversationID,
		Rating:            rating,
		Comment:           comment,
		Source:            source,
		RequiresAttention: requiresAttention,
		CreatedAt:         time.Now(),
	}, nil
}
