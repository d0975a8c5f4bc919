package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	OutputConfig struct {
		RootSelector   string `yaml:"root_selector" validate:"required"`
		Minify         bool   `yaml:"minify"`
		UtilityClasses bool   `yaml:"utility_classes"`
		CustomCSS      bool   `yaml:"custom_css"`
		Banner         string `yaml:"banner"`
		Strict         bool   `yaml:"strict"`
	}

	CacheConfig struct {
		TTL     time.Duration `yaml:"ttl" validate:"gte=0"`
		Cleanup time.Duration `yaml:"cleanup_interval" validate:"gte=0"`
	}

	WatchConfig struct {
		Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Output    OutputConfig   `yaml:"output"`
		Cache     CacheConfig    `yaml:"cache"`
		Watch     WatchConfig    `yaml:"watch"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above.
const BannerTemplateFieldName TemplateFieldName = "banner"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(BannerTemplateFieldName)),
)

// checkConfig rejects root selectors which would break the generated rule.
func checkConfig(sl validator.StructLevel) {
	out := sl.Current().Interface().(Config).Output
	if strings.TrimSpace(out.RootSelector) == "" {
		sl.ReportError(out.RootSelector, "output.root_selector", "RootSelector", "required", "")
		return
	}
	if strings.ContainsAny(out.RootSelector, "{};") {
		sl.ReportError(out.RootSelector, "output.root_selector", "RootSelector", "selector", "")
	}
}

func validate(cfg *Config) error {
	return gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig))
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
