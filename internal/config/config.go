package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHANGE_"

type Config struct {
	ServiceNow ServiceNowConfig `koanf:"servicenow"`
	Lifecycle  LifecycleConfig  `koanf:"lifecycle"`
	Defaults   DefaultsConfig   `koanf:"defaults"`
	Report     ReportConfig     `koanf:"report"`
	Logger     LoggerConfig     `koanf:"logger"`
}

type ServiceNowConfig struct {
	Instance     string        `koanf:"instance" validate:"required"`
	APIKey       string        `koanf:"api_key" validate:"required"`
	APIKeyHeader string        `koanf:"api_key_header" validate:"required"`
	APIPath      string        `koanf:"api_path" validate:"required"`
	BaseURL      string        `koanf:"base_url" validate:"omitempty,url"`
	ConnTimeout  time.Duration `koanf:"conn_timeout" validate:"required"`
}

// ChangeURL returns the change collection endpoint. BaseURL wins over the
// instance-derived URL so tests and proxies can point elsewhere.
func (c ServiceNowConfig) ChangeURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s/%s", c.Instance, strings.Trim(c.APIPath, "/"))
}

type LifecycleConfig struct {
	// Comma separated list of target states applied in order after creation.
	Transitions string `koanf:"transitions"`
	Timezone    string `koanf:"timezone"`
}

// TransitionStates parses Transitions. An empty list is valid and means the
// record is only created.
func (c LifecycleConfig) TransitionStates() ([]int, error) {
	raw := strings.TrimSpace(c.Transitions)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	states := make([]int, 0, len(parts))
	for _, p := range parts {
		state, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid transition state %q: %w", p, err)
		}
		states = append(states, state)
	}
	return states, nil
}

func (c LifecycleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// DefaultsConfig holds the field values every new change request starts from.
type DefaultsConfig struct {
	AssignmentGroup    string `koanf:"assignment_group" validate:"required"`
	Service            string `koanf:"service" validate:"required"`
	Justification      string `koanf:"justification"`
	ImplementationPlan string `koanf:"implementation_plan"`
	RiskAndImpact      string `koanf:"risk_and_impact"`
	BackoutPlan        string `koanf:"backout_plan"`
	TestPlan           string `koanf:"test_plan"`
}

type ReportConfig struct {
	OutputFile string `koanf:"output_file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"servicenow.api_key_header":    "x-sn-apikey",
		"servicenow.api_path":          "/api/sn_chg_rest/change",
		"servicenow.conn_timeout":      "30s",
		"lifecycle.transitions":        "-4",
		"defaults.assignment_group":    "Help Desk",
		"defaults.service":             "SAP Payroll",
		"defaults.justification":       "We need this",
		"defaults.implementation_plan": "how to run it via the change automation job",
		"defaults.risk_and_impact":     "hello world",
		"defaults.backout_plan":        "back out",
		"defaults.test_plan":           "Tested",
		"logger.level":                 "info",
		"logger.format":                "text",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if mainConfig.Report.OutputFile == "" {
		mainConfig.Report.OutputFile = os.Getenv("GITHUB_OUTPUT")
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if _, err := mainConfig.Lifecycle.TransitionStates(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if _, err := mainConfig.Lifecycle.Location(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, fmt.Errorf("invalid timezone %q: %w", mainConfig.Lifecycle.Timezone, err)
	}

	return mainConfig, nil
}
