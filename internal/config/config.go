package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Config holds all pipeline settings, populated from environment variables.
// The env tag names the variable each field is read from.
type Config struct {
	InputPath       string `env:"AQI_INPUT_PATH" validate:"required"`
	XLSXSheet       string `env:"AQI_XLSX_SHEET"`
	CleanedPath     string `env:"AQI_CLEANED_PATH" validate:"required,nefield=InputPath"`
	SummaryPath     string `env:"AQI_SUMMARY_PATH" validate:"required,nefield=InputPath,nefield=CleanedPath"`
	ReportPath      string `env:"AQI_REPORT_PATH"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
	LogLevel        string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string `env:"LOG_FORMAT" validate:"oneof=json text"`
}

// Load reads configuration from environment variables, applying defaults where unset.
// The defaults reproduce the fixed file names of a zero-configuration run.
func Load() (*Config, error) {
	cfg := &Config{
		InputPath:       cleanPath(sharedcfg.EnvOrDefault("AQI_INPUT_PATH", "aqi_data.csv")),
		XLSXSheet:       sharedcfg.EnvOrDefault("AQI_XLSX_SHEET", ""),
		CleanedPath:     cleanPath(sharedcfg.EnvOrDefault("AQI_CLEANED_PATH", "cleaned_aqi_data.csv")),
		SummaryPath:     cleanPath(sharedcfg.EnvOrDefault("AQI_SUMMARY_PATH", "analysis_summary.csv")),
		ReportPath:      cleanPath(sharedcfg.EnvOrDefault("AQI_REPORT_PATH", "")),
		MetricsTextfile: cleanPath(sharedcfg.EnvOrDefault("METRICS_TEXTFILE", "")),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints. Messages name the environment variable.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, len(verrs))
	for i, fe := range verrs {
		msgs[i] = errors.New(describe(fe))
	}
	return errors.Join(msgs...)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s (both %q)", fe.Field(), envName(fe.Param()), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

// envName maps a Config field name to its environment variable.
func envName(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		return f.Tag.Get("env")
	}
	return field
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
