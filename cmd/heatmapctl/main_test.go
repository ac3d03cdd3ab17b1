package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `date,max_temperature,min_temperature
2007-12-31,19.2,14.1
2008-01-05,10,2
2008-01-20,15,-1
bad,1,1
2009-07-01,33.1,27.2
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSVGCommand(t *testing.T) {
	out, stderr, err := execute(t, "svg", "--source", writeCSV(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "HKG Monthly Temperature Data (2008-2009)")
	assert.Equal(t, 2, strings.Count(out, "data-tooltip="))
	assert.Contains(t, stderr, "row rejected", "rejected rows are logged to stderr")
}

func TestSVGCommand_OutFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "heatmap.svg")
	out, _, err := execute(t, "svg", "--source", writeCSV(t), "--mode", "min", "--out", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fill="#5e4fa2" opacity="0.8"`)
}

func TestHTMLCommand(t *testing.T) {
	out, _, err := execute(t, "html", "--source", writeCSV(t), "--city", "Hong Kong")
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Hong Kong Monthly Temperature Data")
	assert.Contains(t, out, `id="toggleMinMax"`)
}

func TestGridCommand(t *testing.T) {
	out, _, err := execute(t, "grid", "--source", writeCSV(t), "--min-year", "2009")
	require.NoError(t, err)

	assert.Contains(t, out, "2009")
	assert.Contains(t, out, "33.1")
	assert.NotContains(t, out, "2008")
}

func TestBucketsCommand(t *testing.T) {
	out, _, err := execute(t, "buckets", "--source", writeCSV(t), "--mode", "min")
	require.NoError(t, err)

	var buckets []struct {
		Key    string `json:"key"`
		Color  string `json:"color"`
		Bucket struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		} `json:"bucket"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))
	require.Len(t, buckets, 2)
	assert.Equal(t, "2008-01", buckets[0].Key)
	assert.Equal(t, "#5e4fa2", buckets[0].Color)
	assert.Equal(t, 2009, buckets[1].Bucket.Year)
	assert.Equal(t, 6, buckets[1].Bucket.Month)
}

func TestBucketsCommand_CustomColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renamed.csv")
	body := "day,tmax,tmin\n2008-01-05,10,2\n2008-01-20,15,-1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, _, err := execute(t, "buckets", "--source", path,
		"--date-column", "day", "--max-column", "tmax", "--min-column", "tmin")
	require.NoError(t, err)

	var buckets []struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "2008-01", buckets[0].Key)

	_, _, err = execute(t, "buckets", "--source", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestSparklineCommand(t *testing.T) {
	out, _, err := execute(t, "sparkline", "2008", "1", "--source", writeCSV(t), "--width", "200", "--height", "120")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestCommandErrors(t *testing.T) {
	src := writeCSV(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad mode", []string{"svg", "--source", src, "--mode", "avg"}, "avg"},
		{"missing source", []string{"svg", "--source", filepath.Join(t.TempDir(), "nope.csv")}, "open"},
		{"bad month", []string{"sparkline", "2008", "13", "--source", src}, "invalid month"},
		{"unknown bucket", []string{"sparkline", "2012", "1", "--source", src}, "no data for 2012-01"},
		{"missing args", []string{"sparkline", "2008"}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
