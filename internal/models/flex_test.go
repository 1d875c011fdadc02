package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_DecodesInconsistentShapes(t *testing.T) {
	raw := `{
		"_id": {"$oid": "65ab"},
		"id": 42,
		"name": "Kaju Katli",
		"price": "450.50",
		"rating": null,
		"piece": "12",
		"tags": "sweet, festive ,",
		"image": "kaju.jpg"
	}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, FlexString(""), p.ProductID)
	assert.Equal(t, FlexString("65ab"), p.MongoID)
	assert.Equal(t, FlexString("42"), p.ID)
	assert.True(t, p.Price.Valid)
	assert.InDelta(t, 450.5, p.Price.Value, 1e-9)
	assert.False(t, p.Rating.Valid)
	assert.Equal(t, 12, p.Piece.Or(0))
	assert.Equal(t, FlexStrings{"sweet", "festive"}, p.Tags)
}

func TestProduct_GarbageFieldsDefault(t *testing.T) {
	raw := `{"product_id": true, "price": "free", "piece": {}, "tags": 7}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, FlexString(""), p.ProductID)
	assert.Equal(t, 0.0, p.Price.Or(0))
	assert.False(t, p.Piece.Valid)
	assert.Nil(t, p.Tags)
}

func TestFlexFloat_MarshalNull(t *testing.T) {
	b, err := json.Marshal(struct {
		A FlexFloat `json:"a"`
		B FlexInt   `json:"b"`
	}{B: FlexInt{Value: 3, Valid: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":3}`, string(b))
}

func TestFlexFloat_NonFiniteIsInvalid(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"nan"`, `"Inf"`, `"-Infinity"`, `"+inf"`} {
		var f FlexFloat
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.False(t, f.Valid, raw)
		assert.Equal(t, 0.0, f.Or(0), raw)

		var n FlexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		assert.False(t, n.Valid, raw)
	}
}
