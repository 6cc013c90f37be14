package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOSOLVE_EVALUATOR_UNKNOWN.
const EnvPrefix = "GOSOLVE"

type Config struct {
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Display   DisplayConfig   `mapstructure:"display"`
}

type EvaluatorConfig struct {
	Unknown           string `mapstructure:"unknown" validate:"required,identifier"`
	SignificantDigits int    `mapstructure:"significant_digits" validate:"min=1,max=15"`
	VerifyRoots       bool   `mapstructure:"verify_roots"`
}

type DisplayConfig struct {
	Format      string `mapstructure:"format" validate:"oneof=text json yaml"`
	Color       bool   `mapstructure:"color"`
	Placeholder string `mapstructure:"placeholder"`
	DefaultType string `mapstructure:"default_type" validate:"oneof=linear quadratic"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gosolve")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("evaluator.unknown", "x")
	v.SetDefault("evaluator.significant_digits", 4)
	v.SetDefault("evaluator.verify_roots", false)
	v.SetDefault("display.format", "text")
	v.SetDefault("display.color", true)
	v.SetDefault("display.placeholder", "The solution will appear here")
	v.SetDefault("display.default_type", "linear")

	// Every key above can be overridden from the environment.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
