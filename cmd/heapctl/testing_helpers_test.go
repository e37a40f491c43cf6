package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena/alloc"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and returns it decoded
func assertJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &result), "invalid JSON: %s", output)
	return result
}

// writeTrace writes a trace file into a temp dir and returns its path
func writeTrace(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.trace")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// resetFlags restores every global flag variable to its default
func resetFlags() {
	verbose, quiet, cfgFile, logFormat = false, false, "", "text"
	runFile, runPages, runMaxRequest = "", 0, alloc.DefaultConfig.MaxRequestSize
	runCheck, runKeepGoing, runFormat = false, false, "text"
	dumpFormat, dumpNoBlocks, dumpNoFreeList = "text", false, false
	verifyJSON = false
	statsFormat = "text"
}

const sampleTrace = `# three blocks, one hole
a a 100
a b 200
a c 5000
f b
r a 300
`
