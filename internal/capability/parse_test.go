package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"items": []}`, StripCodeFences("```json\n{\"items\": []}\n```"))
	assert.Equal(t, `{"items": []}`, StripCodeFences("```\n{\"items\": []}\n```"))
	assert.Equal(t, `{"items": []}`, StripCodeFences(`{"items": []}`))
	assert.Equal(t, `{"a":1}`, StripCodeFences("Here you go:\n```json\n{\"a\":1}\n```\nenjoy"))
}

func TestDecodeItems(t *testing.T) {
	items := DecodeItems(`{"items": [{"product_id": "p1", "product_name": "Pizza", "quantity": 2}]}`)
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestDecodeItemsWithCodeFences(t *testing.T) {
	items := DecodeItems("```json\n{\"items\": [{\"product_id\": \"p1\", \"product_name\": \"Pizza\", \"quantity\": 1}]}\n```")
	assert.Len(t, items, 1)
}

func TestDecodeItemsDefaultsQuantityToOne(t *testing.T) {
	items := DecodeItems(`{"items": [{"product_id": "p1", "product_name": "Pizza"}]}`)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestDecodeItemsDropsEntriesWithoutProductID(t *testing.T) {
	items := DecodeItems(`{"items": [{"product_name": "Misterio", "quantity": 3}, {"product_id": "p2", "product_name": "Cola", "quantity": 1}]}`)
	assert.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestDecodeItemsGarbageYieldsEmpty(t *testing.T) {
	assert.Empty(t, DecodeItems("I could not find any products, sorry!"))
	assert.Empty(t, DecodeItems(""))
}

func TestDecodeAnalysis(t *testing.T) {
	a := DecodeAnalysis(`{"is_complaint": true, "rating": 1, "sentiment": "angry"}`)
	assert.True(t, a.IsComplaint)
	assert.Equal(t, 1, a.Rating)
	assert.Equal(t, "angry", a.Sentiment)
}

func TestDecodeAnalysisFencedAndDefaults(t *testing.T) {
	a := DecodeAnalysis("```json\n{\"is_complaint\": false}\n```")
	assert.False(t, a.IsComplaint)
	assert.Equal(t, 3, a.Rating)
	assert.Equal(t, "neutral", a.Sentiment)
}

func TestDecodeAnalysisGarbageIsNeutral(t *testing.T) {
	a := DecodeAnalysis("the user seems upset")
	assert.Equal(t, NeutralAnalysis(), a)
}

func TestBuildIntentPromptIncludesHint(t *testing.T) {
	prompt := BuildIntentPrompt("y una coca cola", "User has an ACTIVE ORDER in progress with items already selected.")
	assert.Contains(t, prompt, "CONTEXT: User has an ACTIVE ORDER")
	assert.Contains(t, prompt, `User: "y una coca cola"`)

	bare := BuildIntentPrompt("hola", "")
	assert.NotContains(t, bare, "CONTEXT:")
}
