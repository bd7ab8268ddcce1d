package conftree_test

import (
	"testing"

	"github.com/0xalexb/conftree"
	"github.com/0xalexb/conftree/config"
	"github.com/0xalexb/conftree/errs"
	"github.com/0xalexb/conftree/logging"
	"github.com/0xalexb/conftree/resolver"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func memTree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	filesystem := memfs.New()

	for name, content := range files {
		require.NoError(t, util.WriteFile(filesystem, name, []byte(content), 0o644))
	}

	return filesystem
}

type listenConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

func TestNewModule_ProvidesGetterForConfigProvider(t *testing.T) {
	t.Parallel()

	filesystem := memTree(t, map[string]string{
		"/srv/conf/listen.yaml": "address: 0.0.0.0\nport: 8443\n",
	})

	var cfg *listenConfig

	app := fxtest.New(t,
		fx.Supply(logging.Discard()),
		conftree.NewModule(
			conftree.WithFilesystem(filesystem),
			conftree.WithDirectory("/srv/conf"),
		),
		fx.Provide(config.Provider(new(listenConfig), "listen.yaml")),
		fx.Populate(&cfg),
	)

	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, "0.0.0.0", cfg.Address)
	assert.Equal(t, 8443, cfg.Port)
}

func TestNewModule_TrustAndAutoOrder(t *testing.T) {
	t.Setenv("CONFTREE_MODULE_TEST", "from-env")

	filesystem := memTree(t, map[string]string{
		"/srv/conf/env.yaml": "#type:yaml\nvalue: !env CONFTREE_MODULE_TEST\n",
		"/srv/conf/plain":    "42",
	})

	var tree *resolver.Resolver

	app := fxtest.New(t,
		conftree.NewModule(
			conftree.WithLogger(logging.Discard()),
			conftree.WithFilesystem(filesystem),
			conftree.WithDirectory("/srv/conf"),
			conftree.WithTrusted("yaml"),
			conftree.WithAutoOrder("text"),
		),
		fx.Populate(&tree),
	)

	app.RequireStart()
	defer app.RequireStop()

	value, err := tree.Get("env.yaml/value")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	value, err = tree.Get("plain")
	require.NoError(t, err)
	assert.Equal(t, "42", value)

	assert.True(t, tree.Registry().Dangerous("yaml"))
	assert.Equal(t, []string{"text"}, tree.Registry().AutoOrder())
}

func TestNewModule_PreloadFailure(t *testing.T) {
	t.Parallel()

	filesystem := memTree(t, map[string]string{
		"/srv/conf/broken.json": "#type:json\n{",
	})

	app := fxtest.New(t,
		conftree.NewModule(
			conftree.WithLogger(logging.Discard()),
			conftree.WithFilesystem(filesystem),
			conftree.WithDirectory("/srv/conf"),
			conftree.WithPreload("broken.json"),
		),
	)

	err := app.Start(t.Context())
	require.Error(t, err)
	assert.Equal(t, errs.KindLoaderRuntime, errs.KindOf(err))
}

func TestNew(t *testing.T) {
	t.Parallel()

	filesystem := memTree(t, map[string]string{
		"/srv/conf/a/b.json": `{"c": [1, 2, 3]}`,
	})

	tree, err := conftree.New(
		conftree.WithLogLevel("error"),
		conftree.WithFilesystem(filesystem),
		conftree.WithDirectory("/srv/conf"),
	)
	require.NoError(t, err)

	value, err := tree.Get("a/b.json/c/2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)

	_, err = conftree.New(conftree.WithTrusted("nope"))
	require.ErrorIs(t, err, errs.ErrUnknownLoader)
}
