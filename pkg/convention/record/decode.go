package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var requiredKeys = []string{KeyId, KeyYear, KeyTitle}

// Decode parses a JSON object body into a Record.
//
// Keys are checked in the order id, year, title and the first absent one is
// reported. year accepts an integral JSON number or a string holding a base-10
// integer. id and title accept strings, numbers (as their literal text) and
// booleans.
func Decode(body []byte) (Record, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return Record{}, err
	}

	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return Record{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	id, err := coerceString(KeyId, fields[KeyId])
	if err != nil {
		return Record{}, err
	}

	if id == "" {
		return Record{}, fmt.Errorf("%w: %s must not be empty", ErrInvalidFieldType, KeyId)
	}

	year, err := coerceInt(KeyYear, fields[KeyYear])
	if err != nil {
		return Record{}, err
	}

	title, err := coerceString(KeyTitle, fields[KeyTitle])
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:    id,
		Year:  year,
		Title: title,
	}, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	var fields map[string]any

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	if fields == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedInput)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedInput)
	}

	return fields, nil
}

func coerceString(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %s", ErrInvalidFieldType, key, describe(value))
	}
}

func coerceInt(key string, value any) (int, error) {
	switch v := value.(type) {
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			return n, nil
		}

		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidFieldType, key, v.String())
		}

		return int(f), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidFieldType, key, v)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidFieldType, key, describe(value))
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
