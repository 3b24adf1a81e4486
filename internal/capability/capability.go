// Package capability define os contratos estreitos com os serviços de
// linguagem natural consumidos pelo agente. As interfaces são pequenas de
// propósito: implementações alternativas (regras, outro modelo) podem ser
// trocadas sem tocar na máquina de estados do agente.
package capability

import "context"

// CatalogItem é a visão do catálogo enviada ao serviço de extração
type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// CandidateItem é um item candidato extraído da mensagem do cliente.
// Menções não reconhecidas no catálogo nunca chegam aqui: são descartadas
// pelo serviço de extração, não inventadas.
type CandidateItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// Analysis é o resultado da análise de sentimento de uma mensagem
type Analysis struct {
	IsComplaint bool   `json:"is_complaint"`
	Rating      int    `json:"rating"`
	Sentiment   string `json:"sentiment"`
}

// NeutralAnalysis é o valor usado quando a análise de sentimento falha
func NeutralAnalysis() Analysis {
	return Analysis{IsComplaint: false, Rating: 3, Sentiment: "neutral"}
}

// Classifier classifica a intenção de uma mensagem. O hint carrega contexto
// determinístico (ex.: "pedido ativo em andamento") injetado no prompt.
type Classifier interface {
	Classify(ctx context.Context, message, hint string) (string, error)
}

// Extractor converte texto livre em itens candidatos do catálogo.
// Quantidade não informada vale 1. Falha total de parse retorna lista vazia
// sem erro.
type Extractor interface {
	ExtractItems(ctx context.Context, catalog []CatalogItem, message string) ([]CandidateItem, error)
}

// Sentiment analisa o sentimento de uma mensagem de avaliação ou reclamação
type Sentiment interface {
	Analyze(ctx context.Context, message string) (Analysis, error)
}

// Responder gera texto livre de resposta (usado pelo handler de FAQ para
// redigir a resposta final sobre o contexto recuperado)
type Responder interface {
	Respond(ctx context.Context, system, prompt string) (string, error)
}

// Suite agrupa as capacidades injetadas no agente
type Suite struct {
	Classifier Classifier
	Extractor  Extractor
	Sentiment  Sentiment
	Responder  Responder
}
