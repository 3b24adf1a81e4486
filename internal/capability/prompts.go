package capability

import (
	"encoding/json"
	"fmt"
)

// Prompt de classificação de intenção com exemplos few-shot. O placeholder
// de contexto recebe o hint de pedido ativo quando existe um rascunho.
const intentClassificationPrompt = `You are an intent classifier for a customer service chatbot. Classify the user's message into exactly ONE of these categories:

- faq: Questions about hours, location, payment methods, menu, allergens, products available, prices, or general information. ALSO includes requests to see the menu or product list when NO order is active.
- order_create: User wants to place a NEW order with SPECIFIC products mentioned (e.g., "quiero 2 pizzas", "dame un café"). ONLY use this when there is NO active order.
- order_update: User wants to modify an existing order. This includes: adding items ("y también quiero...", "agrégame..."), removing items, canceling, or asking about menu/products when an order is already active. CRITICAL: If there is an ACTIVE ORDER and user mentions ANY product, this is order_update, NOT order_create.
- complaint: User is expressing dissatisfaction, reporting a problem, or making a complaint
- review: User is leaving positive feedback, a rating, or a review
- other: Message doesn't fit any of the above categories (greetings, unclear messages)

CRITICAL RULES:
1. If the user asks about the menu or products BEFORE ordering, classify as "faq"
2. If there is an ACTIVE ORDER (see context below) and user wants to add products, classify as "order_update"
3. Words like "y", "también", "además", "and", "also" often indicate adding to an existing order

Examples:

User: "What time do you close today?"
Intent: faq

User: "¿Qué tienen disponible?"
Intent: faq

User: "Quiero ver el menú"
Intent: faq

User: "I'd like to order 2 pizzas and a salad"
Intent: order_create

User: "Quiero pedir un café con leche y dos croissants"
Intent: order_create

User: "Dame 3 empanadas"
Intent: order_create

User: "Can I add fries to my order?"
Intent: order_update

User: "¿Qué bebidas tienen?" [Context: Active order exists]
Intent: order_update

User: "y quiero unos fideos" [Context: Active order exists]
Intent: order_update

User: "también dame una coca cola" [Context: Active order exists]
Intent: order_update

User: "Puedo cancelar mi pedido?"
Intent: order_update

User: "My food arrived cold and late"
Intent: complaint

User: "La comida estaba horrible"
Intent: complaint

User: "The service was excellent, 5 stars!"
Intent: review

User: "Todo estuvo delicioso, muy recomendado"
Intent: review

User: "Hello"
Intent: other

Now classify this message. Respond with ONLY the intent category (faq, order_create, order_update, complaint, review, or other), nothing else.

%s
User: "%s"
Intent:`

// BuildIntentPrompt monta o prompt de classificação para a mensagem,
// incluindo o hint de contexto quando informado
func BuildIntentPrompt(message, hint string) string {
	contextInfo := ""
	if hint != "" {
		contextInfo = "CONTEXT: " + hint + "\n"
	}
	return fmt.Sprintf(intentClassificationPrompt, contextInfo, message)
}

const extractionPromptTemplate = `You are an order extraction assistant. Extract the products and quantities from the user's message.

Available products:
%s

User message: "%s"

Extract the products mentioned and their quantities. Return a JSON object with this exact structure:
{
  "items": [
    {"product_id": "uuid-here", "product_name": "Product Name", "quantity": 2}
  ]
}

If you cannot identify any SPECIFIC products from the catalog, return {"items": []}.
Only include products that are clearly mentioned in the user's message and exist in the catalog.
Match products by name, considering variations and synonyms.

Return ONLY the JSON object, nothing else.`

// BuildExtractionPrompt monta o prompt de extração com o catálogo do tenant
func BuildExtractionPrompt(catalog []CatalogItem, message string) string {
	catalogJSON, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		catalogJSON = []byte("[]")
	}
	return fmt.Sprintf(extractionPromptTemplate, string(catalogJSON), message)
}

const sentimentPromptTemplate = `You are a sentiment analysis assistant. Analyze the user's message and extract:
1. Whether this is a complaint (negative sentiment) or a positive review
2. A rating from 1-5 (1 = very negative, 5 = very positive)
3. The main sentiment/emotion

User message: "%s"

Return a JSON object with this exact structure:
{
  "is_complaint": true or false,
  "rating": 1-5,
  "sentiment": "description of sentiment"
}

Guidelines:
- If the message expresses dissatisfaction, problems, or complaints, set is_complaint to true and rating 1-2
- If the message is neutral or unclear, set rating to 3
- If the message expresses satisfaction or praise, set is_complaint to false and rating 4-5
- Consider words like: malo/bad, horrible/terrible, excelente/excellent, delicioso/delicious, etc.

Return ONLY the JSON object, nothing else.`

// BuildSentimentPrompt monta o prompt de análise de sentimento
func BuildSentimentPrompt(message string) string {
	return fmt.Sprintf(sentimentPromptTemplate, message)
}
