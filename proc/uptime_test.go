package proc

import (
	"strings"
	"testing"
	"time"
)

func TestReadUptime(t *testing.T) {
	u, err := ReadUptime(strings.NewReader("1640919.14 2328903.47\n"))
	if err != nil {
		t.Fatalf("read uptime: %v", err)
	}
	if have, want := u.Up, 1640919*time.Second+140*time.Millisecond; have != want {
		t.Errorf("up mismatch: have=%s want=%s", have, want)
	}
	if have, want := u.Idle, 2328903*time.Second+470*time.Millisecond; have != want {
		t.Errorf("idle mismatch: have=%s want=%s", have, want)
	}
}

func TestReadUptimeErrors(t *testing.T) {
	for _, v := range []struct {
		name  string
		in    string
		check func(error) bool
	}{
		{"empty", "", IsEndOfStream},
		{"missing dot", "164 232\n", IsDecode},
		{"missing idle", "1640919.14\n", IsDecode},
		{"trailing garbage", "1.5 2.5 junk\n", IsDecode},
		{"not numbers", "up idle\n", IsDecode},
		{"fraction too long", "1.0123456789 2.5\n", IsInvariant},
	} {
		u, err := ReadUptime(strings.NewReader(v.in))
		if err == nil || !v.check(err) {
			t.Errorf("%s: error mismatch: have=%v", v.name, err)
		}
		if u != nil {
			t.Errorf("%s: decoded a partial result", v.name)
		}
	}
}
