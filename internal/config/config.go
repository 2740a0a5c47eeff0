// Package config loads the import and group specifications.
//
// Both documents are read from TOML (.toml, the default) or YAML
// (.yaml, .yml) files. Pattern tables are returned as Mapping slices in
// ascending pattern order, which is the order in which they are matched.
package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/juev/spendreport/internal/source"
)

const DefaultDelimiter = ';'

// Import describes the layout of one kind of statement export.
type Import struct {
	Skip         *int              `toml:"skip" yaml:"skip" validate:"omitempty,gte=0"`
	Delimiter    string            `toml:"delimiter" yaml:"delimiter" validate:"omitempty,len=1"`
	DateFormat   string            `toml:"date_format" yaml:"date_format" validate:"required"`
	NumberLocale string            `toml:"number_locale" yaml:"number_locale"`
	NumberFormat string            `toml:"number_format" yaml:"number_format"`
	Map          map[string]string `toml:"map" yaml:"map" validate:"min=1,dive,keys,required,endkeys,required"`
}

// Groups maps party patterns to canonical group names.
type Groups struct {
	Parties map[string]string `toml:"parties" yaml:"parties" validate:"dive,keys,required,endkeys,required"`
}

// Mapping is one entry of a pattern table.
type Mapping struct {
	Pattern string
	Target  string
}

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (c *Import) SkipRows() int {
	if c.Skip == nil {
		return 0
	}
	return *c.Skip
}

func (c *Import) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return DefaultDelimiter
}

func (c *Import) Mappings() []Mapping {
	return sortedMappings(c.Map)
}

func (g *Groups) Mappings() []Mapping {
	return sortedMappings(g.Parties)
}

func sortedMappings(m map[string]string) []Mapping {
	result := make([]Mapping, 0, len(m))
	for pattern, target := range m {
		result = append(result, Mapping{Pattern: pattern, Target: target})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Pattern < result[j].Pattern
	})
	return result
}

func LoadImport(path string) (*Import, error) {
	var cfg Import
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadGroups reads a group specification. An empty path yields an empty
// table, so every party becomes its own group.
func LoadGroups(path string) (*Groups, error) {
	if path == "" {
		return &Groups{}, nil
	}
	var cfg Groups
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ParseImport(data []byte, format string) (*Import, error) {
	var cfg Import
	if err := parse("", data, format, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ParseGroups(data []byte, format string) (*Groups, error) {
	var cfg Groups
	if err := parse("", data, format, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(path string, v any) error {
	data, err := source.NewLoader().ReadFile(path)
	if err != nil {
		return err
	}
	return parse(path, data, formatOf(path), v)
}

func parse(path string, data []byte, format string, v any) error {
	if err := decode(data, format, v); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return &ConfigError{Path: path, Err: describeValidation(err)}
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "toml"
}

func decode(data []byte, format string, v any) error {
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
		return nil
	case "toml", "":
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
		return nil
	}
	return fmt.Errorf("unsupported config format %q", format)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func describeValidation(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", field, fe.Param()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must be a single character", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must have at least %s entries", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
