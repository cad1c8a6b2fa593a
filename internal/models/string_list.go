package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidOrdersShape = errors.New("invalid orders data format received")

// OrderList decodes the orders endpoint whether it returns a bare array or
// an object wrapping the array under results, orders or data.
type OrderList []Order

func (l *OrderList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = OrderList{}
		return nil
	}

	if trimmed[0] == '[' {
		var orders []Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return err
		}
		*l = orders
		return nil
	}

	if trimmed[0] != '{' {
		return ErrInvalidOrdersShape
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}
	for _, key := range []string{"results", "orders", "data"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			return ErrInvalidOrdersShape
		}
		var orders []Order
		if err := json.Unmarshal(raw, &orders); err != nil {
			return err
		}
		*l = orders
		return nil
	}
	return ErrInvalidOrdersShape
}
