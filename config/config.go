// Package config loads garnet's YAML configuration file.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pattyshack/gt/filesystem"
	"gopkg.in/yaml.v3"

	"github.com/pattyshack/garnet/parser"
	"github.com/pattyshack/garnet/parser/scope"
)

const DefaultFileName = ".garnet.yaml"

type Config struct {
	// Block parameter semantics.  "1.8" (default) or "1.9".
	Dialect string `yaml:"dialect"`

	// Log every parser transition.
	Debug bool `yaml:"debug"`

	// Run the post-parse analyzer passes.
	Analyze bool `yaml:"analyze"`

	// Top level locals which are visible before the first statement.
	EvalLocals []string `yaml:"eval_locals"`

	// commonlog verbosity.  0 logs errors and warnings only.
	Verbosity int `yaml:"verbosity"`
}

func Default() Config {
	return Config{
		Dialect: scope.Ruby18{}.Name(),
		Analyze: true,
	}
}

// Decode reads a configuration document.  Unset fields keep their default
// values; unknown fields are errors.
func Decode(reader io.Reader) (Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(&config)
	if err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, config.Validate()
}

// Load reads the configuration file at path from the local file system.  A
// missing file yields the default configuration.
func Load(path string) (Config, error) {
	return LoadFrom(filesystem.NewLocalFileSystem(), path)
}

func LoadFrom(fs filesystem.FileSystem, path string) (Config, error) {
	content, err := fs.ReadFile(path)
	if filesystem.IsNotExistError(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}

	config, err := Decode(bytes.NewReader(content))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (config Config) Validate() error {
	if scope.DialectByName(config.Dialect) == nil {
		return fmt.Errorf("unknown dialect (%s)", config.Dialect)
	}
	if config.Verbosity < 0 {
		return fmt.Errorf("negative verbosity (%d)", config.Verbosity)
	}
	return nil
}

func (config Config) ParserConfig(fileName string) parser.Config {
	result := parser.Config{
		FileName: fileName,
		Debug:    config.Debug,
		Dialect:  scope.DialectByName(config.Dialect),
	}

	if len(config.EvalLocals) > 0 {
		result.EvalScope = &scope.EvalScope{
			Names: append([]string{}, config.EvalLocals...),
		}
	}

	return result
}
