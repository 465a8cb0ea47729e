package options

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Supported payload text encodings.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

type contextKey struct{}

// WithVariables stores device variables inside the context.
func WithVariables(ctx context.Context, vars map[string]string) context.Context {
	if len(vars) == 0 {
		return ctx
	}
	buf := make(map[string]string, len(vars))
	for k, v := range vars {
		buf[k] = v
	}
	return context.WithValue(ctx, contextKey{}, buf)
}

// Variables retrieves device variables from context if present.
func Variables(ctx context.Context) map[string]string {
	if v := ctx.Value(contextKey{}); v != nil {
		if vars, ok := v.(map[string]string); ok {
			return vars
		}
	}
	return nil
}

// ParseVariables decodes a comma separated list of key=value pairs.
func ParseVariables(input string) (map[string]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	vars := make(map[string]string)
	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("variable %q must have the form key=value", pair)
		}
		vars[key] = strings.TrimSpace(value)
	}
	return vars, nil
}

// ParsePayload decodes payload text in the given encoding. An empty encoding
// means hex.
func ParsePayload(input, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingHex:
		return decodeHex(input)
	case EncodingBase64:
		clean := stripWhitespace(input)
		data, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported payload encoding %q", encoding)
	}
}

func decodeHex(input string) ([]byte, error) {
	clean := strings.ToUpper(stripSeparators(input))
	clean = strings.TrimPrefix(clean, "0X")
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

// stripSeparators drops whitespace and the '|' and '_' grouping characters
// people use when pasting payload dumps.
func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
