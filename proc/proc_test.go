package proc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	s, err := ReadStatFile(write("stat", statFixture))
	if err != nil {
		t.Fatalf("read stat file: %v", err)
	}
	if have, want := len(s.Cpus), 4; have != want {
		t.Errorf("core count mismatch: have=%d want=%d", have, want)
	}

	d, err := ReadDiskStatsFile(write("diskstats", diskFixture))
	if err != nil {
		t.Fatalf("read diskstats file: %v", err)
	}
	if have, want := len(d), 4; have != want {
		t.Errorf("device count mismatch: have=%d want=%d", have, want)
	}

	u, err := ReadUptimeFile(write("uptime", "620922.43 4979376.52\n"))
	if err != nil {
		t.Fatalf("read uptime file: %v", err)
	}
	if u.Up >= u.Idle {
		t.Errorf("fixture mismatch: up=%s idle=%s", u.Up, u.Idle)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadStatFile(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrIO) {
		t.Errorf("missing file error mismatch: have=%v want io", err)
	}
}
