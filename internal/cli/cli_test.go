package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, fs afero.Fs, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(context.Background(), &stdout, &stderr, fs, clockwork.NewFakeClock())
	root.cmd.SetArgs(args)
	code := root.Execute()
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	r := execute(t, afero.NewMemMapFs(), "encode", "--client", "1", "--query", "2", "--shard", "3", "--app", "4")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "283686884868100\n", r.stdout)

	r = execute(t, afero.NewMemMapFs(), "encode", "--client", "65535", "--query", "255", "--shard", "255", "--app", "4294967295", "--hex")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "0xFFFFFFFFFFFFFFFF\n", r.stdout)
}

func TestEncode_OutOfRange(t *testing.T) {
	t.Parallel()

	r := execute(t, afero.NewMemMapFs(), "encode", "--client", "1", "--query", "256")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "identity.query")
}

func TestEncode_FromConfigFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pipetag.yml", []byte("identity:\n  client: 1002\n  query: 1\n  app: 555050\n"), 0o644))

	r := execute(t, fs, "--config", "/pipetag.yml", "encode")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "282039026176260138\n", r.stdout)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	r := execute(t, afero.NewMemMapFs(), "decode", "282039026176260138", "0x0001020300000004")
	require.Equal(t, 0, r.code, r.stderr)

	blocks := strings.Split(r.stdout, "\n\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "id: 282039026176260138\n"+
		"clientId (2 bytes): 1002 (high byte 3, low byte 234)\n"+
		"queryId (1 byte): 1\n"+
		"shardId (1 byte): 0\n"+
		"appId (4 bytes): 555050", blocks[0])
	assert.Contains(t, blocks[1], "id: 283686884868100")
}

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	r := execute(t, afero.NewMemMapFs(), "decode", "--json", "283686884868100")
	require.Equal(t, 0, r.code, r.stderr)
	assert.JSONEq(t, `{"id":283686884868100,"clientId":1,"clientIdHigh":0,"clientIdLow":1,"queryId":2,"shardId":3,"appId":4}`, r.stdout)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	r := execute(t, afero.NewMemMapFs(), "decode", "12abc")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid correlation id syntax")
}

func TestVerify(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/r/expected.json", []byte(`{"q4": [{"Name": "Delta"}]}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/r/ok.txt", []byte("[QUERY 4 - PARCIAL]: Delta\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/r/bad.txt", []byte("[QUERY 4 - PARCIAL]: Omega\n"), 0o644))

	r := execute(t, fs, "verify", "--results", "/r/ok.txt", "--expected", "/r/expected.json", "--client", "9")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "q4 is correct")
	assert.Contains(t, r.stdout, "correlation 2537672836907008")

	r = execute(t, fs, "verify", "--results", "/r/bad.txt", "--expected", "/r/expected.json")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stdout, "Expected: [QUERY 4 - PARCIAL]: Delta")
	assert.Contains(t, r.stderr, "results do not match")
}

func TestDrain_Once(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/db/client-1", 0o755))
	require.NoError(t, fs.MkdirAll("/db/client-2", 0o755))

	r := execute(t, fs, "drain", "--root", "/db", "--once")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "All stores are empty\n", r.stdout)

	require.NoError(t, afero.WriteFile(fs, "/db/client-2/part-0", []byte("x"), 0o644))
	r = execute(t, fs, "drain", "--root", "/db", "--once")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "Directory client-2 contains: 1 items\n", r.stdout)
}

func TestDrain_WaitReturnsWhenEmpty(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/db/client-1", 0o755))

	r := execute(t, fs, "drain", "--root", "/db", "--interval", "10ms")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "All stores are empty\n", r.stdout)
}
