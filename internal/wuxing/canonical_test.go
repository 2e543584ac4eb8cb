package wuxing

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalResultDeterministic(t *testing.T) {
	engine := NewEngine()
	in := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Wei", 40)

	res, err := engine.Analyze(in)
	require.NoError(t, err)

	first, err := CanonicalResult(res)
	require.NoError(t, err)
	second, err := CanonicalResult(res)
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second), "canonical bytes diverged")

	// A fresh run of the same chart canonicalizes identically.
	res2, err := engine.Analyze(in)
	require.NoError(t, err)
	third, err := CanonicalResult(res2)
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, third))
}

func TestReportDigest(t *testing.T) {
	d1 := ReportDigest([]byte("canonical-bytes"))
	d2 := ReportDigest([]byte("canonical-bytes"))
	require.Equal(t, d1, d2)
	require.Len(t, d1, 64)

	d3 := ReportDigest([]byte("other-bytes"))
	require.NotEqual(t, d1, d3)
}

func TestChartChip(t *testing.T) {
	withHour := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "Ding-Chou", 40)
	withoutHour := chartInput("Bing-Yin", "Ji-Hai", "Ding-Chou", "", 40)

	c1, err := ChartChip(withHour)
	require.NoError(t, err)
	c2, err := ChartChip(withoutHour)
	require.NoError(t, err)

	// The omitted hour pillar resolves to the day pillar, so both inputs
	// name the same chart.
	require.Equal(t, c1, c2)
	require.Len(t, c1, 12)

	other := chartInput("Jia-Zi", "Bing-Wu", "Wu-Shen", "Ren-Mao", 25)
	c3, err := ChartChip(other)
	require.NoError(t, err)
	require.NotEqual(t, c1, c3)
}

func TestSignReport(t *testing.T) {
	secret, err := hex.DecodeString(
		"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)

	s1, err := SignReport([]byte("canonical"), secret)
	require.NoError(t, err)
	s2, err := SignReport([]byte("canonical"), secret)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
	require.Len(t, s1, 64)

	_, err = SignReport([]byte("canonical"), nil)
	require.Error(t, err)
}
