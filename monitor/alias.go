// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/qri-io/jsonschema"
)

const aliasSchemaJSON = `{
	"$schema": "http://json-schema.org/draft/2019-09/schema#",
	"$id": "https://blockwatch.cc/procwatch/schemas/alias.json",
	"title": "Device Alias",
	"type": "object",
	"required": [ "name", "kind" ],
	"properties": {
	   	"name": {
	   		"type": "string",
    		"description": "Display name for this block device."
    	},
	    "kind": {
	      	"type": "string",
	      	"enum": [
				"ssd",
				"hdd",
				"nvme",
				"raid",
				"virtual",
				"loop",
				"network",
				"other"
	      	],
	      	"description": "A structured type used for filtering."
	    },
	    "description": {
	      "description": "A brief description.",
	      "type": "string"
	    }
	}
}`

var aliasSchema = &jsonschema.Schema{}

func init() {
	if err := json.Unmarshal([]byte(aliasSchemaJSON), aliasSchema); err != nil {
		panic(fmt.Errorf("monitor: invalid alias schema: %v", err))
	}
}

// Alias attaches operator metadata to a kernel device name.
type Alias struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

func (a Alias) Validate() error {
	buf, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return validateBytes(aliasSchema, buf)
}

func validateBytes(schema *jsonschema.Schema, buf []byte) error {
	errs, err := schema.ValidateBytes(context.Background(), buf)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf(errs[0].Error())
	}
	return nil
}

// AliasSet maps kernel device names to aliases. Lookups run on xxhash
// keys, the name map serves iteration and JSON round trips.
type AliasSet struct {
	names map[string]Alias
	byKey map[uint64]Alias
}

func aliasKey(device string) uint64 {
	return xxhash.Sum64String(device)
}

func NewAliasSet() *AliasSet {
	return &AliasSet{
		names: make(map[string]Alias),
		byKey: make(map[uint64]Alias),
	}
}

// LoadAliases reads a device alias file, a JSON object keyed by kernel
// device name. Every entry must validate against the alias schema.
func LoadAliases(path string) (*AliasSet, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("monitor: reading alias file failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("monitor: parsing alias file failed: %v", err)
	}
	set := NewAliasSet()
	for dev, msg := range raw {
		if err := validateBytes(aliasSchema, msg); err != nil {
			return nil, fmt.Errorf("monitor: alias %q: %v", dev, err)
		}
		var a Alias
		if err := json.Unmarshal(msg, &a); err != nil {
			return nil, fmt.Errorf("monitor: alias %q: %v", dev, err)
		}
		set.Add(dev, a)
	}
	log.Debugf("monitor: loaded %d device aliases from %s", set.Len(), path)
	return set, nil
}

func (s *AliasSet) Add(device string, a Alias) {
	s.names[device] = a
	s.byKey[aliasKey(device)] = a
}

// Lookup resolves the alias for a kernel device name.
func (s *AliasSet) Lookup(device string) (Alias, bool) {
	if s == nil {
		return Alias{}, false
	}
	a, ok := s.byKey[aliasKey(device)]
	return a, ok
}

func (s *AliasSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

func (s *AliasSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.names)
}
