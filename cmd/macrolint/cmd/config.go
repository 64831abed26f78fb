package cmd

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/embedlang/macrolang/parser"
)

// SourceConfig names one JSON batch file to ingest at startup, tagged
// with the extension its records should be stamped with.
type SourceConfig struct {
	Extension string `yaml:"extension"`
	Path      string `yaml:"path"`
}

// DatabaseConfig is one named registry-source database connection,
// mirroring the teacher's DatabaseConfig{Connection string} shape
// (cli/cmd/config.go) but pointed at a registry batch table instead of
// a sqlcode deployment target.
type DatabaseConfig struct {
	Connection string `yaml:"connection"`
}

// ValidateConfig mirrors parser.ValidationConfig in YAML form.
type ValidateConfig struct {
	Functions bool `yaml:"functions"`
	Brackets  bool `yaml:"brackets"`
	Arguments bool `yaml:"arguments"`
	Enums     bool `yaml:"enums"`
}

func (v ValidateConfig) toParserConfig() parser.ValidationConfig {
	return parser.ValidationConfig{
		ValidateSyntax:    true,
		ValidateFunctions: v.Functions,
		ValidateBrackets:  v.Brackets,
		ValidateArguments: v.Arguments,
		ValidateEnums:     v.Enums,
	}
}

// Config is macrolint.yaml's decoded shape, loaded the way the teacher's
// LoadConfig reads sqlcode.yaml.
type Config struct {
	ServiceName string                    `yaml:"servicename"`
	Sources     []SourceConfig            `yaml:"sources"`
	Databases   map[string]DatabaseConfig `yaml:"databases"`
	Validate    ValidateConfig            `yaml:"validate"`
}

// LoadConfig reads and decodes the file at path.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, errors.New("no " + path + " found")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
