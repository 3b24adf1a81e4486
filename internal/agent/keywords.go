package agent

import "strings"

// Palavras-chave bilíngues (espanhol/inglês) usadas nas decisões
// determinísticas do motor. A detecção é sempre sobre o texto em minúsculas.
var (
	confirmKeywords = []string{
		"sí", "si", "yes", "confirmar", "confirm", "ok", "okay",
		"dale", "perfecto", "perfect",
	}

	rejectKeywords = []string{
		"no", "cancelar", "cancel", "cambiar", "change", "modificar", "modify",
	}

	cancelKeywords = []string{
		"cancelar", "cancel", "eliminar pedido", "delete order",
		"borrar", "no quiero",
	}

	menuKeywords = []string{
		"menu", "menú", "carta", "qué tienen", "que tienen",
		"qué hay", "que hay", "what do you have",
		"opciones", "options", "disponible", "available",
		"productos", "products", "bebidas", "drinks",
		"postres", "desserts", "comidas", "food",
	}
)

// categoryKeywords mapeia categorias do catálogo para termos que o cliente
// usa ao pedir "o que tem de X"
var categoryKeywords = map[string][]string{
	"bebidas": {
		"bebida", "bebidas", "drink", "drinks", "tomar",
		"refresco", "gaseosa", "jugo", "café", "té",
	},
	"postres": {
		"postre", "postres", "dessert", "desserts", "dulce", "dulces",
		"torta", "pastel", "helado",
	},
	"comidas": {
		"comida", "comidas", "food", "plato", "platos",
		"almuerzo", "cena", "lunch", "dinner",
	},
}

// containsAny informa se o texto contém alguma das palavras-chave
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isConfirmation detecta resposta afirmativa a um pedido pendente
func isConfirmation(text string) bool {
	return containsAny(text, confirmKeywords)
}

// isRejection detecta resposta negativa a um pedido pendente
func isRejection(text string) bool {
	return containsAny(text, rejectKeywords)
}

// isCancellation detecta pedido de cancelamento do rascunho
func isCancellation(text string) bool {
	return containsAny(text, cancelKeywords)
}

// isMenuRequest detecta pergunta sobre o cardápio ou produtos disponíveis
func isMenuRequest(text string) bool {
	return containsAny(text, menuKeywords)
}

// detectCategory identifica a categoria do catálogo mencionada na mensagem,
// ou "" quando nenhuma é reconhecida
func detectCategory(text string) string {
	lower := strings.ToLower(text)
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return category
			}
		}
	}
	return ""
}
