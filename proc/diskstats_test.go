package proc

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReadDiskStats(t *testing.T) {
	stats, err := ReadDiskStats(strings.NewReader(diskFixture))
	if err != nil {
		t.Fatalf("read diskstats: %v", err)
	}
	if have, want := len(stats), 4; have != want {
		t.Errorf("device count mismatch: have=%d want=%d", have, want)
	}
	sda, ok := stats["sda"]
	if !ok {
		t.Fatal("sda missing")
	}
	if have, want := sda.Major, uint64(8); have != want {
		t.Errorf("sda major mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.Minor, uint64(0); have != want {
		t.Errorf("sda minor mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.ReadsCompleted, uint64(521417); have != want {
		t.Errorf("sda reads mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.SectorsRead, uint64(22348877); have != want {
		t.Errorf("sda sectors read mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.TimeReading, 304934*time.Millisecond; have != want {
		t.Errorf("sda time reading mismatch: have=%s want=%s", have, want)
	}
	if have, want := sda.WritesCompleted, uint64(339410); have != want {
		t.Errorf("sda writes mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.IOsInProgress, uint64(0); have != want {
		t.Errorf("sda inflight mismatch: have=%d want=%d", have, want)
	}
	if have, want := sda.TimeIOWeighted, 643956*time.Millisecond; have != want {
		t.Errorf("sda weighted io time mismatch: have=%s want=%s", have, want)
	}
	loop0, ok := stats["loop0"]
	if !ok {
		t.Fatal("loop0 missing")
	}
	if have, want := loop0.Major, uint64(7); have != want {
		t.Errorf("loop0 major mismatch: have=%d want=%d", have, want)
	}
	if have, want := loop0.SectorsRead, uint64(2180); have != want {
		t.Errorf("loop0 sectors read mismatch: have=%d want=%d", have, want)
	}
}

func TestReadDiskStatsEmpty(t *testing.T) {
	stats, err := ReadDiskStats(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read diskstats: %v", err)
	}
	if have, want := len(stats), 0; have != want {
		t.Errorf("device count mismatch: have=%d want=%d", have, want)
	}
}

func TestReadDiskStatsDuplicate(t *testing.T) {
	in := `   8       0 sda 10 0 120 5 4 0 64 3 0 8 8 0 0 0 0
   8       0 sda 11 0 128 6 4 0 64 3 0 9 9 0 0 0 0
`
	stats, err := ReadDiskStats(strings.NewReader(in))
	if !IsInvariant(err) {
		t.Errorf("duplicate device error mismatch: have=%v want invariant", err)
	}
	if err != nil && !strings.Contains(err.Error(), "sda") {
		t.Errorf("duplicate device error names no device: have=%v", err)
	}
	if stats != nil {
		t.Error("decoded a partial result")
	}
}

func TestReadDiskStatsErrors(t *testing.T) {
	for _, v := range []struct {
		name  string
		in    string
		field string
	}{
		{"bad major", "x 0 sda 10 0 120 5 4 0 64 3 0 8 8\n", "major number"},
		{"missing name", "8 0\n", "device name"},
		{"truncated line", "8 0 sda 10 0 120 5 4 0 64 3 0 8\n", "weighted time spent doing I/Os (ms)"},
	} {
		_, err := ReadDiskStats(strings.NewReader(v.in))
		if !IsDecode(err) {
			t.Errorf("%s: error mismatch: have=%v want decode", v.name, err)
			continue
		}
		var e *Error
		if !errors.As(err, &e) || e.Msg != v.field {
			t.Errorf("%s: field mismatch: have=%v want=%q", v.name, err, v.field)
		}
	}
}

// mixed column counts: loop and sr lines in the 15 column format of
// kernel 4.18, sda with the 20 columns of 5.5, sda1 with the bare 14
const diskFixture = `   7       0 loop0 58 0 2180 14 0 0 0 0 0 32 14 0 0 0 0
   8       0 sda 521417 235672 22348877 304934 339410 376859 23719913 514977 0 331096 643956 0 0 0 0 0 0 0 0
   8       1 sda1 512206 233741 22191317 303455 318851 376859 23719913 512922 0 329094 639420
  11       0 sr0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0
`
