package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(afero.NewMemMapFs(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Verify.Workers)
	assert.Equal(t, time.Second, cfg.Drain.Interval)
}

func TestLoad_FileAndFlags(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/pipetag.yml", []byte(`
log:
  level: debug
identity:
  client: 1002
  query: 1
  app: 555050
drain:
  root: /data
  interval: 250ms
`), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	require.NoError(t, flags.Parse([]string{"--root", "/override"}))

	cfg, err := Load(fs, "/etc/pipetag.yml", map[string]*pflag.Flag{"drain.root": flags.Lookup("root")})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, IdentityConfig{ClientID: 1002, QueryID: 1, AppID: 555050}, cfg.Identity)
	assert.Equal(t, "/override", cfg.Drain.Root)
	assert.Equal(t, 250*time.Millisecond, cfg.Drain.Interval)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PIPETAG_LOG_FORMAT", "json")
	t.Setenv("PIPETAG_IDENTITY_SHARD", "7")

	cfg, err := Load(afero.NewMemMapFs(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(7), cfg.Identity.ShardID)
	assert.Contains(t, Environ(), "PIPETAG_IDENTITY_SHARD")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(afero.NewMemMapFs(), "/missing.yml", nil)
	assert.ErrorContains(t, err, `cannot read config file "/missing.yml"`)
}

func TestValidate_JoinsFieldErrors(t *testing.T) {
	t.Parallel()

	err := Validate(Config{
		Log:      LogConfig{Level: "loud", Format: "console"},
		Identity: IdentityConfig{ClientID: 65536, QueryID: -1},
		Verify:   VerifyConfig{Workers: 1},
		Drain:    DrainConfig{Interval: time.Second},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key="log.level", value="loud", failed "oneof" validation`)
	assert.Contains(t, err.Error(), `key="identity.client", value="65536", failed "lte" validation`)
	assert.Contains(t, err.Error(), `key="identity.query", value="-1", failed "gte" validation`)
}
