package log

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ib-77/pipetag/pkg/cid"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, f)

	f, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, FormatConsole, f)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, zapcore.WarnLevel, FormatConsole)
	logger.Infof("hidden %d", 1)
	logger.Warnf("shown %d", 2)
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 2")
}

func TestLogger_CorrelationField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	id := cid.MustEncode(1002, 1, 0, 555050)
	logger := NewLogger(&buf, zapcore.DebugLevel, FormatJSON).With(Correlation(id), zap.String("stage", "ingress"))
	logger.Debugf("accepted")

	var record struct {
		Message     string `json:"message"`
		Stage       string `json:"stage"`
		Correlation struct {
			ID     string `json:"id"`
			Client uint16 `json:"client"`
			Query  uint8  `json:"query"`
			Shard  uint8  `json:"shard"`
			App    uint32 `json:"app"`
		} `json:"correlation"`
	}
	line := strings.TrimSpace(buf.String())
	require.NoError(t, jsoniter.UnmarshalFromString(line, &record))

	assert.Equal(t, "accepted", record.Message)
	assert.Equal(t, "ingress", record.Stage)
	assert.Equal(t, "282039026176260138", record.Correlation.ID)
	assert.Equal(t, uint16(1002), record.Correlation.Client)
	assert.Equal(t, uint8(1), record.Correlation.Query)
	assert.Equal(t, uint8(0), record.Correlation.Shard)
	assert.Equal(t, uint32(555050), record.Correlation.App)
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	logger.Errorf("nothing %s", "here")
	assert.NotNil(t, logger.With(zap.Int("n", 1)))
}
