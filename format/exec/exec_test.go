package exec_test

import (
	"testing"

	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/format/exec"
	"github.com/0xalexb/conftree/header"
	"github.com/0xalexb/conftree/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionSet(pairs ...string) header.Options {
	var opts header.Options

	for i := 0; i+1 < len(pairs); i += 2 {
		opts.Set(pairs[i], pairs[i+1])
	}

	return opts
}

func TestLoad(t *testing.T) {
	t.Parallel()

	value, err := exec.Load("echo hello\n", header.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	value, err = exec.Load("printf 'a\\n\\n'", optionSet("keep_newline", ""))
	require.NoError(t, err)
	assert.Equal(t, "a\n\n", value)

	value, err = exec.Load(`echo '{"port": 80, "hosts": ["a"]}'`, optionSet("json", ""))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"port": int64(80), "hosts": []any{"a"}}, value)

	value, err = exec.Load("echo $0", optionSet("shell", "/bin/sh -e"))
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh", value)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := exec.Load("echo broken >&2; exit 3", header.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	_, err = exec.Load("echo", optionSet("shell", "'unterminated"))
	assert.Equal(t, errs.KindOptionParse, errs.KindOf(err))

	_, err = exec.Load("echo", optionSet("shell", "  "))
	assert.Equal(t, errs.KindOptionParse, errs.KindOf(err))

	_, err = exec.Load("echo not json", optionSet("json", ""))
	require.Error(t, err)
}

func TestDescriptor_DisabledUntilTrusted(t *testing.T) {
	t.Parallel()

	registry := loader.New()
	require.NoError(t, registry.Register(exec.Descriptor()))

	_, err := registry.Dispatch("shell", "echo hi", header.Options{})
	require.ErrorIs(t, err, errs.ErrDisabledLoader)

	require.NoError(t, registry.SetDangerous("exec", true))

	value, err := registry.Dispatch("shell", "echo hi", header.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", value)
}
