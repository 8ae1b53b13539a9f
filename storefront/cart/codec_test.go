package cart

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moms-kitchen/storefront/types"
)

func TestCodecRoundTrip(t *testing.T) {
	big := types.MenuItem{
		ID:          1<<53 + 1,
		Name:        "Banquet",
		Description: "Feeds a village",
		Available:   true,
		ImageURL:    "https://example.com/banquet.jpg",
		Price:       1<<63 + 7,
	}
	state := NewState(
		Line{Item: dish(1, 1200), Quantity: 2},
		Line{Item: big, Quantity: 1},
	)

	payload, err := Encode(state)
	require.NoError(t, err)
	assert.Contains(t, payload, `"id":"9007199254740993"`)
	assert.Contains(t, payload, `"price":"9223372036854775815"`)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	if diff := cmp.Diff(state, decoded); diff != "" {
		t.Errorf("round trip changed state (-want +got):\n%s", diff)
	}
}

func TestEncodeEmpty(t *testing.T) {
	payload, err := Encode(State{})
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.True(t, decoded.Empty())
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	tests := map[string]string{
		"not json":          `{{{`,
		"object not array":  `{"items":[]}`,
		"numeric id":        `[{"menuItem":{"id":1,"price":"100"},"quantity":1}]`,
		"non-decimal price": `[{"menuItem":{"id":"1","price":"ten"},"quantity":1}]`,
		"missing item":      `[{"quantity":1}]`,
		"zero quantity":     `[{"menuItem":{"id":"1","price":"100"},"quantity":0}]`,
		"duplicate id": `[{"menuItem":{"id":"1","price":"100"},"quantity":1},` +
			`{"menuItem":{"id":"1","price":"100"},"quantity":2}]`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(payload)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "decode cart"))
		})
	}
}
