package status

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"presencesync/internal/config"
	"presencesync/internal/presence"
	"presencesync/internal/sink"
	"presencesync/internal/titles"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	return cfg
}

func TestDisplay(t *testing.T) {
	t.Run("empty library", func(t *testing.T) {
		cfg := testConfig(t)

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err != nil {
			t.Fatalf("DisplayTo() returned error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No titles played yet") {
			t.Errorf("expected empty library message, got %q", output)
		}
		if !strings.Contains(output, "not persisted by the log sink") {
			t.Errorf("expected log sink message, got %q", output)
		}
	})

	t.Run("library entries", func(t *testing.T) {
		cfg := testConfig(t)
		reg := titles.NewRegistry(titles.NewStore(cfg.LibraryPath()))

		start := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
		now := start
		reg.SetClock(func() time.Time { return now })

		if err := reg.Launch("01007EF00011E000", "Breath of the Wild"); err != nil {
			t.Fatal(err)
		}
		now = start.Add(90 * time.Minute)
		if err := reg.Exit(); err != nil {
			t.Fatal(err)
		}
		if err := reg.Launch("0100ABCDEF000000", "Homebrew"); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err != nil {
			t.Fatalf("DisplayTo() returned error: %v", err)
		}

		output := buf.String()
		expectedStrings := []string{
			"Library: 2 titles",
			"01007ef00011e000 Breath of the Wild: 1.5 hours, last played 2024-05-01 20:00 UTC [image] [reports]",
			"0100abcdef000000 Homebrew: never played",
		}
		for _, expected := range expectedStrings {
			if !strings.Contains(output, expected) {
				t.Errorf("expected output to contain %q, got:\n%s", expected, output)
			}
		}
		if strings.Contains(output, "Homebrew: never played, last played 2024-05-01 21:30 UTC [") {
			t.Error("homebrew title should carry no tags")
		}
	})

	t.Run("corrupt library", func(t *testing.T) {
		cfg := testConfig(t)
		if err := os.WriteFile(cfg.LibraryPath(), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err == nil {
			t.Error("DisplayTo() expected error for corrupt library")
		}
	})
}

func TestDisplayPresence(t *testing.T) {
	t.Run("file sink without session", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sink = config.SinkFile

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Presence: no session running") {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("file sink connected", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sink = config.SinkFile

		f := sink.NewFile("1293250299716173864", cfg.SinkPath())
		if err := f.Connect(); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "connected as 1293250299716173864, nothing published") {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("file sink published", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sink = config.SinkFile

		f := sink.NewFile("app", cfg.SinkPath())
		if err := f.Connect(); err != nil {
			t.Fatal(err)
		}
		if err := f.Publish(presence.NewMainRecord("v1.2.3 owner/repo", time.Now())); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		for _, want := range []string{"Presence (app", "Main Menu", "Idling", "image ryujinx: v1.2.3 owner/repo"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("unreadable presence file", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sink = config.SinkFile
		if err := os.WriteFile(filepath.Join(cfg.WorkDir, cfg.SinkFile), []byte("garbage"), 0644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := DisplayTo(&buf, cfg); err == nil {
			t.Error("DisplayTo() expected error for unreadable presence file")
		}
	})
}
