package capability

import (
	"encoding/json"
	"strings"
)

// StripCodeFences remove marcadores de bloco de código (```json ... ```)
// que alguns modelos insistem em devolver em volta do JSON
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	} else {
		return s
	}

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// DecodeItems interpreta a resposta do serviço de extração. Tenta o parse
// direto e, se falhar, tenta novamente após remover cercas de código.
// Falha total de parse resulta em lista vazia, nunca em erro: o turno
// continua como se nada tivesse sido reconhecido.
func DecodeItems(raw string) []CandidateItem {
	var payload struct {
		Items []CandidateItem `json:"items"`
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		if err := json.Unmarshal([]byte(StripCodeFences(raw)), &payload); err != nil {
			return nil
		}
	}

	items := make([]CandidateItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ProductID == "" {
			continue
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		items = append(items, item)
	}
	return items
}

// DecodeAnalysis interpreta a resposta da análise de sentimento, caindo
// para o valor neutro quando o parse falha
func DecodeAnalysis(raw string) Analysis {
	var analysis Analysis

	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &analysis); err != nil {
		if err := json.Unmarshal([]byte(StripCodeFences(raw)), &analysis); err != nil {
			return NeutralAnalysis()
		}
	}

	if analysis.Rating == 0 {
		analysis.Rating = 3
	}
	if analysis.Sentiment == "" {
		analysis.Sentiment = "neutral"
	}
	return analysis
}
