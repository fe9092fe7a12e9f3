package monitor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAliasFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAliases(t *testing.T) {
	path := writeAliasFile(t, `{
		"sda": {"name": "system disk", "kind": "ssd"},
		"md0": {"name": "data raid", "kind": "raid", "description": "mirrored pair"}
	}`)
	set, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("load aliases: %v", err)
	}
	if have, want := set.Len(), 2; have != want {
		t.Errorf("alias count mismatch: have=%d want=%d", have, want)
	}
	a, ok := set.Lookup("sda")
	if !ok {
		t.Fatal("sda alias missing")
	}
	if have, want := a.Name, "system disk"; have != want {
		t.Errorf("alias name mismatch: have=%q want=%q", have, want)
	}
	if _, ok := set.Lookup("sdb"); ok {
		t.Error("unexpected alias for sdb")
	}

	buf, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal aliases: %v", err)
	}
	if !strings.Contains(string(buf), `"md0"`) {
		t.Errorf("marshaled aliases miss device key: %s", buf)
	}
}

func TestLoadAliasesInvalid(t *testing.T) {
	for _, v := range []struct {
		name, in string
	}{
		{"bad kind", `{"fd0": {"name": "floppy", "kind": "floppy"}}`},
		{"missing name", `{"sda": {"kind": "ssd"}}`},
		{"not json", `kind=ssd`},
	} {
		if _, err := LoadAliases(writeAliasFile(t, v.in)); err == nil {
			t.Errorf("%s: load did not fail", v.name)
		}
	}

	if _, err := LoadAliases(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file: load did not fail")
	}
}

func TestAliasValidate(t *testing.T) {
	if err := (Alias{Name: "scratch", Kind: "hdd"}).Validate(); err != nil {
		t.Errorf("valid alias rejected: %v", err)
	}
	if err := (Alias{Name: "scratch", Kind: "banana"}).Validate(); err == nil {
		t.Error("invalid kind accepted")
	}
}

func TestAliasLookupNil(t *testing.T) {
	var set *AliasSet
	if _, ok := set.Lookup("sda"); ok {
		t.Error("nil set resolved an alias")
	}
	if have, want := set.Len(), 0; have != want {
		t.Errorf("nil set len mismatch: have=%d want=%d", have, want)
	}
}
