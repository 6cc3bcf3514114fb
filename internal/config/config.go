// Package config loads operator configuration.
//
// Configuration is CUE: the embedded schema.cue defines #Config with
// defaults, and an optional user file (CUE or JSON) is unified with it.
// Unknown fields, wrong types and out-of-range values are rejected with the
// position of the offending value.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/assetsaving/internal/contract"
	"github.com/roach88/assetsaving/internal/record"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded operator configuration.
type Config struct {
	AccumulatePolicy string   `json:"accumulate_policy"`
	LegacyMessages   bool     `json:"legacy_messages"`
	Currencies       []string `json:"currencies"`
	Journal          string   `json:"journal"`
	LogLevel         string   `json:"log_level"`
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := LoadBytes("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads the configuration file at path. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(path, data)
}

// LoadBytes unifies src with the schema and decodes the result.
// filename is used in error positions only.
func LoadBytes(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	v := schema.LookupPath(cue.ParsePath("#Config"))

	if len(src) > 0 {
		user := ctx.CompileBytes(src, cue.Filename(filename))
		if err := user.Err(); err != nil {
			return Config{}, formatCUEError(err)
		}
		v = v.Unify(user)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}

	for _, code := range cfg.Currencies {
		if _, err := record.NewAmount(code, 0); err != nil {
			return Config{}, &Error{Field: "currencies", Message: err.Error()}
		}
	}
	return cfg, nil
}

// Policy maps accumulate_policy to the verifier option value.
func (c Config) Policy() contract.AccumulatePolicy {
	if c.AccumulatePolicy == "reject" {
		return contract.AccumulateRejected
	}
	return contract.AccumulateUnchecked
}

// Allowed returns the currency allow-list.
func (c Config) Allowed() record.Currencies {
	return record.Currencies(c.Currencies)
}

// Level maps log_level to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "config"
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	out := &Error{Field: field, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
