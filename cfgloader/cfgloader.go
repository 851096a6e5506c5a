// Package cfgloader loads and validates YAML configuration at the start of a run.
package cfgloader

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/flatbread/logger"
)

// Load reads the YAML file at path into a new T, then applies defaults and validates it.
//
// A .env file in the working directory is loaded first if present, and ${VAR}
// references in the YAML are replaced with environment values before parsing.
//
// The configuration struct should use `yaml` struct tags to map fields to the YAML file structure.
// Default values are set with the `default` struct tag and applied for fields the file leaves out.
// Validations are done using the go-playground/validator package.
//
// Example:
//
//	type Config struct {
//	    Source string        `yaml:"source" validate:"required"`
//	    Agg    string        `yaml:"agg" default:"max"`
//	    Logger logger.Config `yaml:"logger"`
//	}
//
// Fields tagged `mask:"true"` are masked when the loaded config is printed.
func Load[T any](path string, opts ...Option) (T, error) {
	var config T

	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	if reflect.ValueOf(&config).Elem().Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: type argument must not be a pointer",
			errx.WithCode(CodeInvalidTarget),
		)
	}

	_ = godotenv.Load()

	data, err := readConfigFile(path)
	if err != nil {
		return config, err
	}

	data = replaceEnvVars(data)

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err,
			errx.WithCode(CodeMalformed),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"path": path}),
		)
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidTarget))
	}

	if err = validateConfig(&config, path); err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(&config)
	}

	return config, nil
}

// MustLoad is like Load but exits the process when the config cannot be loaded.
func MustLoad[T any](path string, opts ...Option) T {
	config, err := Load[T](path, opts...)
	if err != nil {
		logger.Errorx(err)
		_ = logger.Sync()
		os.Exit(1)
	}
	return config
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errx.New("[cfgloader]: config file not found",
			errx.WithCode(CodeNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	return data, nil
}

func replaceEnvVars(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}

func validateConfig(config any, path string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint // Using type assertion for validator errors handling
		for _, err := range errs {
			tagErr := err.Tag()
			if err.Param() != "" {
				tagErr += fmt.Sprintf("=%s", err.Param())
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", err.Namespace(), tagErr))
		}
	}

	if len(failedFields) > 0 {
		return errx.New("[cfgloader]: invalid config fields",
			errx.WithCode(CodeInvalid),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{
				"path":   path,
				"fields": strings.Join(failedFields, ", "),
			}),
		)
	}

	return nil
}
