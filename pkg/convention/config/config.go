package config

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvTableName      = "TABLE_NAME"
	EnvDynamoEndpoint = "DYNAMODB_ENDPOINT"
)

// Only the variables listed here are read; everything else in the environment is ignored.
var envKeys = map[string]string{
	EnvTableName:      "table.name",
	EnvDynamoEndpoint: "dynamodb.endpoint",
}

type Table struct {
	Name string `koanf:"name" validate:"required"`
}

type Dynamo struct {
	Endpoint string `koanf:"endpoint" validate:"omitempty,url"`
}

type Config struct {
	Table  Table  `koanf:"table"`
	Dynamo Dynamo `koanf:"dynamodb"`
}

// FromEnv reads and validates configuration from the process environment.
func FromEnv() (Config, error) {
	c, err := load()
	if err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// ClientsFromEnv reads configuration but validates only what client construction needs.
// The table name is left to FromEnv so its absence fails an invocation, not startup.
func ClientsFromEnv() (Config, error) {
	c, err := load()
	if err != nil {
		return Config{}, err
	}

	if err := c.ValidateClients(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func load() (Config, error) {
	var c Config

	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return c, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func (c Config) ValidateClients() error {
	if err := validator.New().Struct(c.Dynamo); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func (c Config) Json() (string, error) {
	cJson, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	return string(cJson), nil
}
