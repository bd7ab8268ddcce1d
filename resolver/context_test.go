package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/conftree/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_SetAndAbs(t *testing.T) {
	t.Parallel()

	context := resolver.NewContext("/srv")
	assert.Equal(t, "/srv", context.Get())

	context.Set("config/../conf")
	assert.Equal(t, "/srv/conf", context.Get())

	context.Set("/etc")
	assert.Equal(t, "/etc", context.Get())

	assert.Equal(t, "/etc/app/port", context.Abs("app/port"))
	assert.Equal(t, "/var/lib", context.Abs("/var//lib/"))
	assert.Equal(t, "/etc", context.Abs(""))
}

func TestContext_DefaultsToWorkingDirectory(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, resolver.NewContext("").Get())
	assert.Equal(t, filepath.Join(wd, "conf"), resolver.NewContext("conf").Get())
}

func TestContext_UsingNested(t *testing.T) {
	t.Parallel()

	context := resolver.NewContext("/original")

	err := context.Using("/y", func() error {
		assert.Equal(t, "/y", context.Get())

		err := context.Using("x", func() error {
			assert.Equal(t, "/y/x", context.Get())

			return nil
		})
		assert.Equal(t, "/y", context.Get())

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "/original", context.Get())
}
