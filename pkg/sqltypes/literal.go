package sqltypes

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05.999999"
)

// QuoteString renders s as a single-quoted SQL string literal. Embedded
// quotes are doubled; backslashes are doubled when the dialect treats them
// as escapes.
func QuoteString(s string, lc LiteralContext) string {
	if lc.BackslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (t Integer) Literal(v any, _ LiteralContext) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	}
	return "", &UnsupportedValueError{Type: t, Value: v}
}

func (t Numeric) Literal(v any, lc LiteralContext) (string, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.String(), nil
	case float32:
		return decimal.NewFromFloat32(n).String(), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", &UnsupportedValueError{Type: t, Value: v}
		}
		return decimal.NewFromFloat(n).String(), nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return "", &UnsupportedValueError{Type: t, Value: v}
		}
		return d.String(), nil
	}
	return Integer{}.Literal(v, lc)
}

func (t Numeric) BindValue(v any) (any, error) {
	if s, ok := v.(string); ok {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, &UnsupportedValueError{Type: t, Value: v}
		}
		return d, nil
	}
	return v, nil
}

func (t Float) Literal(v any, lc LiteralContext) (string, error) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return Integer{}.Literal(v, lc)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &UnsupportedValueError{Type: t, Value: v}
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func (t String) Literal(v any, lc LiteralContext) (string, error) {
	return stringLiteral(t, v, lc)
}

func (t Text) Literal(v any, lc LiteralContext) (string, error) {
	return stringLiteral(t, v, lc)
}

func stringLiteral(t Type, v any, lc LiteralContext) (string, error) {
	switch s := v.(type) {
	case string:
		return QuoteString(s, lc), nil
	case []byte:
		return QuoteString(string(s), lc), nil
	case interface{ String() string }:
		return QuoteString(s.String(), lc), nil
	}
	return "", &UnsupportedValueError{Type: t, Value: v}
}

func (t Boolean) Literal(v any, lc LiteralContext) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", &UnsupportedValueError{Type: t, Value: v}
	}
	switch {
	case lc.NativeBoolean && b:
		return "TRUE", nil
	case lc.NativeBoolean:
		return "FALSE", nil
	case b:
		return "1", nil
	default:
		return "0", nil
	}
}

func (t Date) Literal(v any, lc LiteralContext) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return QuoteString(d.Format(dateLayout), lc), nil
	case string:
		if _, err := time.Parse(dateLayout, d); err != nil {
			return "", &UnsupportedValueError{Type: t, Value: v}
		}
		return QuoteString(d, lc), nil
	}
	return "", &UnsupportedValueError{Type: t, Value: v}
}

func (t DateTime) Literal(v any, lc LiteralContext) (string, error) {
	ts, ok := v.(time.Time)
	if !ok {
		return "", &UnsupportedValueError{Type: t, Value: v}
	}
	if !t.Timezone {
		return QuoteString(ts.Format(dateTimeLayout), lc), nil
	}
	return QuoteString(ts.Format(dateTimeLayout+"-07:00"), lc), nil
}

func (t UUID) Literal(v any, lc LiteralContext) (string, error) {
	u, err := t.parse(v)
	if err != nil {
		return "", err
	}
	return QuoteString(u.String(), lc), nil
}

func (t UUID) BindValue(v any) (any, error) {
	u, err := t.parse(v)
	if err != nil {
		return nil, err
	}
	return u.String(), nil
}

func (t UUID) parse(v any) (uuid.UUID, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		parsed, err := uuid.Parse(u)
		if err != nil {
			return uuid.Nil, &UnsupportedValueError{Type: t, Value: v}
		}
		return parsed, nil
	}
	return uuid.Nil, &UnsupportedValueError{Type: t, Value: v}
}

func (t JSON) Literal(v any, lc LiteralContext) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", &UnsupportedValueError{Type: t, Value: v}
	}
	return QuoteString(string(b), lc), nil
}

func (t JSON) BindValue(v any) (any, error) {
	switch v.(type) {
	case string, []byte:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &UnsupportedValueError{Type: t, Value: v}
	}
	return string(b), nil
}

// Literal infers a concrete type from the value and renders with it.
func (t NullType) Literal(v any, lc LiteralContext) (string, error) {
	inferred := Infer(v)
	if _, ok := inferred.(NullType); ok {
		return "", &UnsupportedValueError{Type: t, Value: v}
	}
	lp, ok := inferred.(LiteralProcessor)
	if !ok {
		return "", &UnsupportedValueError{Type: inferred, Value: v}
	}
	return lp.Literal(v, lc)
}
