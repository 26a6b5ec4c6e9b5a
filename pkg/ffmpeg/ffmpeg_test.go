package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbe(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "video", "channels": 0},
			{"codec_type": "audio", "sample_rate": "44100", "channels": 2}
		],
		"format": {"duration": "123.456", "format_name": "wav"}
	}`

	info, err := parseProbe(raw)
	require.NoError(t, err)

	assert.Equal(t, 44100, info.SampleRate)
	assert.Equal(t, 2, info.Channels)
	assert.Equal(t, 123.456, info.Duration)
	assert.Equal(t, "wav", info.Format)
}

func TestParseProbeNoAudioStream(t *testing.T) {
	raw := `{"streams": [{"codec_type": "video"}], "format": {"duration": "5"}}`

	_, err := parseProbe(raw)
	assert.Error(t, err)
}

func TestParseProbeMalformed(t *testing.T) {
	_, err := parseProbe("not json")
	assert.Error(t, err)
}

func TestSetBinary(t *testing.T) {
	t.Cleanup(func() { SetBinary("") })

	SetBinary("/opt/ffmpeg/bin/ffmpeg")
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", binPath)

	SetBinary("")
	assert.Empty(t, binPath)
}

func TestExportRangeRejectsEmptyRange(t *testing.T) {
	err := ExportRange("in.wav", "out.wav", 10, 10)
	assert.Error(t, err)

	err = ExportRange("in.wav", "out.wav", 10, 5)
	assert.Error(t, err)
}
