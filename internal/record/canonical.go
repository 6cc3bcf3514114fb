package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MarshalSigned produces the signed representation of a record.
// CRITICAL: field order is fixed (bank, customer, start_date, accumulation,
// id) and must not change; peers verify signatures over these bytes.
//
// String encoding follows RFC 8785:
// 1. Strings are NFC normalized
// 2. No HTML escaping (< > & are NOT escaped)
// 3. U+2028 and U+2029 stay literal
func MarshalSigned(r AssetSaving) ([]byte, error) {
	bank, err := marshalParty(r.Bank)
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}
	customer, err := marshalParty(r.Customer)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}

	accumulation := NewObject().
		String("currency", r.Accumulation.Currency).
		Int("quantity", r.Accumulation.Quantity)
	accBytes, err := accumulation.Bytes()
	if err != nil {
		return nil, fmt.Errorf("accumulation: %w", err)
	}

	return NewObject().
		Raw("bank", bank).
		Raw("customer", customer).
		String("start_date", FormatTime(r.StartDate)).
		Raw("accumulation", accBytes).
		String("id", r.ID.String()).
		Bytes()
}

// FormatTime renders an instant the way the signed representation does:
// RFC 3339 in UTC with nanoseconds only when present.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func marshalParty(p Party) ([]byte, error) {
	return NewObject().
		String("name", p.Name).
		String("key", p.Key.String()).
		Bytes()
}

// Object writes a JSON object whose keys keep insertion order.
// The first error sticks and is returned by Bytes.
type Object struct {
	buf bytes.Buffer
	n   int
	err error
}

// NewObject starts an empty ordered object.
func NewObject() *Object {
	o := &Object{}
	o.buf.WriteByte('{')
	return o
}

// Raw appends a field whose value is already canonical JSON.
func (o *Object) Raw(key string, value []byte) *Object {
	if o.err != nil {
		return o
	}
	keyBytes, err := MarshalString(key)
	if err != nil {
		o.err = fmt.Errorf("key %q: %w", key, err)
		return o
	}
	if o.n > 0 {
		o.buf.WriteByte(',')
	}
	o.buf.Write(keyBytes)
	o.buf.WriteByte(':')
	o.buf.Write(value)
	o.n++
	return o
}

// String appends a string field.
func (o *Object) String(key, value string) *Object {
	if o.err != nil {
		return o
	}
	valBytes, err := MarshalString(value)
	if err != nil {
		o.err = fmt.Errorf("value for key %q: %w", key, err)
		return o
	}
	return o.Raw(key, valBytes)
}

// Int appends an integer field.
func (o *Object) Int(key string, value int64) *Object {
	return o.Raw(key, []byte(strconv.FormatInt(value, 10)))
}

// Array appends an array of raw canonical elements.
func (o *Object) Array(key string, elems [][]byte) *Object {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(e)
	}
	buf.WriteByte(']')
	return o.Raw(key, buf.Bytes())
}

// Bytes closes the object and returns its encoding.
func (o *Object) Bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	out := make([]byte, 0, o.buf.Len()+1)
	out = append(out, o.buf.Bytes()...)
	return append(out, '}'), nil
}

// MarshalString produces a canonical JSON string with NFC normalization.
// Only control characters (U+0000-U+001F), backslash and quote are escaped.
func MarshalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // CRITICAL: <, >, & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline
	result := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	// Go escapes U+2028/U+2029 for JavaScript; RFC 8785 does not.
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into literal
// characters, leaving \\u2028 (escaped backslash then text) alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		// data[i] starts an escape sequence; consume it whole
		if i+5 < len(data) && data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
		if i+1 < len(data) {
			out = append(out, data[i+1])
			i++
		}
	}
	return out
}
