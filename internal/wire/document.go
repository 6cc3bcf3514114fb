package wire

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/assetsaving/internal/signers"
)

// Document is a proposal as written by a proposal builder.
type Document struct {
	// Transition may be left empty; the validator then rejects the
	// proposal for lacking a command.
	Transition string              `yaml:"transition" json:"transition"`
	EvalTime   Timestamp           `yaml:"eval_time,omitempty" json:"eval_time,omitempty"`
	Parties    map[string]PartyDoc `yaml:"parties" json:"parties"`
	Consumed   []RecordDoc         `yaml:"consumed,omitempty" json:"consumed,omitempty"`
	Produced   []RecordDoc         `yaml:"produced,omitempty" json:"produced,omitempty"`

	// Signers lists party aliases or hex keys.
	Signers []string `yaml:"signers,omitempty" json:"signers,omitempty"`

	// Signatures are verified against the signing payload. Mutually
	// exclusive with Signers.
	Signatures []SignatureDoc `yaml:"signatures,omitempty" json:"signatures,omitempty"`
}

// PartyDoc is one entry of the party directory.
type PartyDoc struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Key  string `yaml:"key,omitempty" json:"key,omitempty"`
}

// RecordDoc is a record with its parties given by alias.
type RecordDoc struct {
	Bank         string    `yaml:"bank" json:"bank"`
	Customer     string    `yaml:"customer" json:"customer"`
	StartDate    Timestamp `yaml:"start_date" json:"start_date"`
	Accumulation AmountDoc `yaml:"accumulation" json:"accumulation"`

	// ID is the record id. Left empty on a produced record, one is minted.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`
}

// AmountDoc is an amount in minor units.
type AmountDoc struct {
	Currency string `yaml:"currency" json:"currency"`
	Quantity int64  `yaml:"quantity" json:"quantity"`
}

// SignatureDoc is a signature with its key given by alias or hex.
type SignatureDoc struct {
	Key string           `yaml:"key" json:"key"`
	Sig signers.HexBytes `yaml:"sig" json:"sig"`
}

// Timestamp is an instant written as RFC 3339 or as a bare yyyy-mm-dd
// date (midnight UTC).
type Timestamp struct {
	time.Time
}

// UnmarshalYAML accepts quoted and unquoted forms alike, so JSON documents
// decode the same way as YAML ones.
func (t *Timestamp) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timestamp must be a scalar", n.Line)
	}
	parsed, err := ParseTime(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	t.Time = parsed
	return nil
}

// MarshalYAML writes the RFC 3339 form.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.UTC().Format(time.RFC3339Nano), nil
}

// ParseTime parses RFC 3339 or yyyy-mm-dd and returns UTC.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or yyyy-mm-dd", s)
}

// Decode reads one document from r.
// Unknown fields are rejected (catches typos like "signer:" vs "signers:").
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("failed to parse document: empty input")
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads a document from path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

func validateDocument(d *Document) error {
	if len(d.Signers) > 0 && len(d.Signatures) > 0 {
		return fmt.Errorf("signers and signatures are mutually exclusive")
	}
	for i, r := range d.Consumed {
		if r.ID == "" {
			return fmt.Errorf("consumed[%d]: id is required", i)
		}
	}
	if len(d.Signatures) == 0 {
		return nil
	}
	// Signatures cover the eval time and every record id, so neither can
	// be filled in after signing.
	if d.EvalTime.IsZero() {
		return fmt.Errorf("eval_time is required when signatures are present")
	}
	for i, r := range d.Produced {
		if r.ID == "" {
			return fmt.Errorf("produced[%d]: id is required when signatures are present", i)
		}
	}
	return nil
}
