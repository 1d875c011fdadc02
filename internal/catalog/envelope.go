package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// listKeys are the envelope keys a list response may use, highest priority first.
var listKeys = []string{"data", "products", "results"}

// ExtractProducts decodes a catalog response. See DecodeList.
func ExtractProducts(raw []byte) []models.Product {
	return DecodeList[models.Product](raw)
}

// DecodeList decodes a list response that may be shaped as {data: [...]},
// {products: [...]}, {results: [...]} or a bare array, probed in that order.
// A key whose value is not an array is skipped. Anything unrecognised yields
// an empty, non-nil slice. Elements that cannot be decoded are dropped.
func DecodeList[T any](raw []byte) []T {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []T{}
	}

	if raw[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return []T{}
		}
		for _, key := range listKeys {
			if items, ok := decodeArray[T](envelope[key]); ok {
				return items
			}
		}
		return []T{}
	}

	if items, ok := decodeArray[T](raw); ok {
		return items
	}
	return []T{}
}

// DecodeObject decodes a single-record response that may be wrapped in data,
// product or result, or be the record itself. ok is false for anything that
// is not a JSON object.
func DecodeObject[T any](raw []byte) (T, bool) {
	var zero T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return zero, false
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return zero, false
	}
	for _, key := range []string{"data", "product", "result"} {
		inner := bytes.TrimSpace(envelope[key])
		if len(inner) > 0 && inner[0] == '{' {
			var v T
			if err := json.Unmarshal(inner, &v); err == nil {
				return v, true
			}
		}
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false
	}
	return v, true
}

func decodeArray[T any](raw json.RawMessage) ([]T, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		if bytes.Equal(e, []byte("null")) {
			continue
		}
		var v T
		if err := json.Unmarshal(e, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, true
}
