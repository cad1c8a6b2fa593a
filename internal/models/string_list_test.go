package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderListAcceptsKnownShapes(t *testing.T) {
	payloads := map[string]string{
		"bare array": `[{"id": 1, "order_number": "ORD-1"}]`,
		"results":    `{"count": 1, "results": [{"id": 1, "order_number": "ORD-1"}]}`,
		"orders":     `{"orders": [{"id": 1, "order_number": "ORD-1"}]}`,
		"data":       `{"data": [{"id": 1, "order_number": "ORD-1"}]}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			var list OrderList
			require.NoError(t, json.Unmarshal([]byte(payload), &list))
			require.Len(t, list, 1)
			assert.Equal(t, "ORD-1", list[0].OrderNumber)
		})
	}
}

func TestOrderListRejectsUnknownShapes(t *testing.T) {
	for _, payload := range []string{`{"items": []}`, `{"results": {"id": 1}}`, `"nope"`} {
		var list OrderList
		err := json.Unmarshal([]byte(payload), &list)
		assert.ErrorIs(t, err, ErrInvalidOrdersShape, payload)
		assert.Empty(t, list)
	}
}
