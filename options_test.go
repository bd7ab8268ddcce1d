package conftree_test

import (
	"testing"

	"github.com/0xalexb/conftree"
	"github.com/0xalexb/conftree/logging"
	"github.com/go-git/go-billy/v5/memfs"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestWithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expected string
	}{
		{
			name:     "debug level",
			level:    "debug",
			expected: "debug",
		},
		{
			name:     "error level",
			level:    "error",
			expected: "error",
		},
		{
			name:     "empty level",
			level:    "",
			expected: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var opts conftree.Options

			conftree.WithLogLevel(testCase.level)(&opts)

			require.Equal(t, testCase.expected, opts.LogLevel)
		})
	}
}

func TestWithModules(t *testing.T) {
	t.Parallel()

	var opts conftree.Options

	conftree.WithModules(fx.Module("test1"))(&opts)
	require.Len(t, opts.Modules, 1)

	conftree.WithModules(fx.Module("test2"), fx.Module("test3"))(&opts)
	require.Len(t, opts.Modules, 3)
}

func TestTreeOptions(t *testing.T) {
	t.Parallel()

	var opts conftree.Options

	filesystem := memfs.New()
	logger := logging.Discard()

	for _, apply := range []conftree.Option{
		conftree.WithDirectory("/etc/app"),
		conftree.WithTrusted("yaml"),
		conftree.WithTrusted("exec"),
		conftree.WithAutoOrder("json", "text"),
		conftree.WithPreload("db"),
		conftree.WithPreload("server.yaml"),
		conftree.WithFilesystem(filesystem),
		conftree.WithLogger(logger),
		conftree.WithLogFormat("text"),
	} {
		apply(&opts)
	}

	require.Equal(t, "/etc/app", opts.Directory)
	require.Equal(t, []string{"yaml", "exec"}, opts.Trusted)
	require.Equal(t, []string{"json", "text"}, opts.AutoOrder)
	require.Equal(t, []string{"db", "server.yaml"}, opts.Preload)
	require.Same(t, filesystem, opts.Filesystem)
	require.Same(t, logger, opts.Logger)
	require.Equal(t, "text", opts.LogFormat)
}

func TestWithAutoOrder_Replaces(t *testing.T) {
	t.Parallel()

	var opts conftree.Options

	conftree.WithAutoOrder("yaml")(&opts)
	conftree.WithAutoOrder("json")(&opts)

	require.Equal(t, []string{"json"}, opts.AutoOrder)
}
