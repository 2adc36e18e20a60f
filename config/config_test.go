package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pattyshack/gt/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/garnet/parser/scope"
)

func TestDecode(t *testing.T) {
	config, err := Decode(strings.NewReader(`
dialect: "1.9"
debug: true
eval_locals: [a, b]
verbosity: 2
`))
	require.NoError(t, err)

	assert.Equal(
		t,
		Config{
			Dialect:    "1.9",
			Debug:      true,
			Analyze:    true,
			EvalLocals: []string{"a", "b"},
			Verbosity:  2,
		},
		config)

	parserConfig := config.ParserConfig("main.rb")
	assert.Equal(t, "main.rb", parserConfig.FileName)
	assert.True(t, parserConfig.Debug)
	assert.Equal(t, scope.Ruby19{}, parserConfig.Dialect)
	require.NotNil(t, parserConfig.EvalScope)
	assert.Equal(t, []string{"a", "b"}, parserConfig.EvalScope.Names)
}

func TestDecodeEmptyDocument(t *testing.T) {
	config, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	parserConfig := config.ParserConfig("main.rb")
	assert.Equal(t, scope.Ruby18{}, parserConfig.Dialect)
	assert.Nil(t, parserConfig.EvalScope)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown field", "dialects: 1.9\n", "field dialects not found"},
		{"unknown dialect", "dialect: \"2.0\"\n", "unknown dialect (2.0)"},
		{"negative verbosity", "verbosity: -1\n", "negative verbosity"},
		{"malformed", "dialect: [\n", "invalid configuration"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(testCase.content))
			assert.ErrorContains(t, err, testCase.errMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	config, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	path := filepath.Join(dir, "garnet.yaml")
	fs := filesystem.NewLocalFileSystem()
	require.NoError(t, fs.WriteFile(path, []byte("analyze: false\n")))

	config, err = Load(path)
	require.NoError(t, err)
	assert.False(t, config.Analyze)
	assert.Equal(t, "1.8", config.Dialect)

	require.NoError(t, fs.WriteFile(path, []byte("dialect: [\n")))
	_, err = LoadFrom(fs, path)
	assert.ErrorContains(t, err, "garnet.yaml: invalid configuration")
}
