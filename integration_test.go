//go:build integration

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencesync/internal/sink"
)

const integrationScript = `name: integration
steps:
  - action: launch
    title_id: 0100F2C0115B6000
    title: "The Legend of Zelda: Tears of the Kingdom"
    version: 1.2.1
  - action: report
    values:
      PlayerPosY: -250.0
  - action: wait
    duration: 100ms
  - action: exit
`

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "presencesync-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build binary: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

func runBinary(t *testing.T, binaryPath, dir string, env []string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil && cmd.ProcessState == nil {
		t.Fatalf("Command failed: %v", err)
	}
	return string(output), cmd.ProcessState.ExitCode()
}

func TestIntegrationHelp(t *testing.T) {
	binaryPath := buildBinary(t)

	output, code := runBinary(t, binaryPath, t.TempDir(), nil, "--help")

	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Usage")
}

func TestIntegrationInvalidConfig(t *testing.T) {
	binaryPath := buildBinary(t)

	output, code := runBinary(t, binaryPath, t.TempDir(), []string{"PRESENCE_SINK=carrier-pigeon"}, "run")

	assert.NotEqual(t, 0, code)
	assert.Contains(t, output, "Error:")
}

func TestIntegrationRunScript(t *testing.T) {
	binaryPath := buildBinary(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.yaml"), []byte(integrationScript), 0644))

	output, code := runBinary(t, binaryPath, dir, []string{"PRESENCE_SINK=file"}, "run", "--script", "session.yaml")

	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Playing The Legend of Zelda: Tears of the Kingdom")
	assert.Contains(t, output, "Exploring the Depths")
	assert.Contains(t, output, "Main Menu | Idling")
	assert.Contains(t, output, "Script completed")

	output, code = runBinary(t, binaryPath, dir, nil, "status")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "0100f2c0115b6000 The Legend of Zelda: Tears of the Kingdom")
	assert.Contains(t, output, "[image] [reports]")
}

func TestIntegrationDisabled(t *testing.T) {
	binaryPath := buildBinary(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.yaml"), []byte(integrationScript), 0644))

	output, code := runBinary(t, binaryPath, dir, nil, "run", "--disabled", "--script", "session.yaml")

	require.Equal(t, 0, code, output)
	assert.NotContains(t, output, "Exploring the Depths")
	assert.Contains(t, output, "title: The Legend of Zelda: Tears of the Kingdom")
}

func TestIntegrationNATSRelay(t *testing.T) {
	url := os.Getenv("PRESENCE_TEST_NATS_URL")
	if url == "" {
		t.Skip("PRESENCE_TEST_NATS_URL not set")
	}

	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()

	msgs := make(chan *nats.Msg, 32)
	sub, err := nc.ChanSubscribe("presence.integration", msgs)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.Flush())

	binaryPath := buildBinary(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.yaml"), []byte(integrationScript), 0644))

	env := []string{"PRESENCE_SINK=nats", "PRESENCE_NATS_URL=" + url, "PRESENCE_NATS_SUBJECT=presence.integration"}
	output, code := runBinary(t, binaryPath, dir, env, "run", "--script", "session.yaml")
	require.Equal(t, 0, code, output)

	var details []string
	cleared := false
	timeout := time.After(5 * time.Second)
	for !cleared {
		select {
		case msg := <-msgs:
			m, err := sink.Decode(msg.Data)
			require.NoError(t, err)
			if m.Presence == nil {
				cleared = len(details) > 0
				continue
			}
			details = append(details, m.Presence.Details)
		case <-timeout:
			t.Fatalf("timed out waiting for presence messages, got %v", details)
		}
	}

	joined, _ := json.Marshal(details)
	assert.True(t, strings.Contains(string(joined), "Exploring the Depths"), "details: %s", joined)
}
