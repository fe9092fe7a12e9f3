// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"

	"github.com/daviddengcn/go-colortext"
	"github.com/tidwall/gjson"
)

// render prints val as JSON, optionally reduced to the -f path first.
// Scalar path results print raw for shell-friendly use.
func render(val interface{}) error {
	if fpath != "" {
		body, err := json.Marshal(val)
		if err != nil {
			return err
		}
		res := gjson.GetBytes(body, fpath)
		if !res.Exists() {
			return fmt.Errorf("no value at path %s", fpath)
		}
		switch v := res.Value().(type) {
		case map[string]interface{}, []interface{}:
			print(v)
		default:
			fmt.Println(res.String())
		}
		return nil
	}
	print(val)
	return nil
}

func print(val interface{}) {
	body, _ := json.MarshalIndent(val, "", "    ")
	if nocolor {
		os.Stdout.Write(body)
	} else {
		var raw interface{}
		dec := json.NewDecoder(bytes.NewBuffer(body))
		dec.UseNumber()
		_ = dec.Decode(&raw)
		printJSON(1, raw, false)
	}
	fmt.Println("")
}

func printJSON(depth int, val interface{}, isKey bool) {
	switch v := val.(type) {
	case nil:
		ct.ChangeColor(ct.Blue, false, ct.None, false)
		fmt.Print("null")
		ct.ResetColor()
	case bool:
		ct.ChangeColor(ct.Blue, false, ct.None, false)
		if v {
			fmt.Print("true")
		} else {
			fmt.Print("false")
		}
		ct.ResetColor()
	case string:
		if isKey {
			ct.ChangeColor(ct.Blue, true, ct.None, false)
		} else {
			ct.ChangeColor(ct.Yellow, false, ct.None, false)
		}
		fmt.Print(strconv.Quote(v))
		ct.ResetColor()
	case json.Number:
		ct.ChangeColor(ct.Blue, false, ct.None, false)
		fmt.Print(v)
		ct.ResetColor()
	case map[string]interface{}:

		if len(v) == 0 {
			fmt.Print("{}")
			break
		}

		var keys []string

		for h := range v {
			keys = append(keys, h)
		}

		sort.Strings(keys)

		fmt.Println("{")
		needNL := false
		for _, key := range keys {
			if needNL {
				fmt.Print(",\n")
			}
			needNL = true
			for i := 0; i < depth; i++ {
				fmt.Print("    ")
			}

			printJSON(depth+1, key, true)
			fmt.Print(": ")
			printJSON(depth+1, v[key], false)
		}
		fmt.Println("")

		for i := 0; i < depth-1; i++ {
			fmt.Print("    ")
		}
		fmt.Print("}")

	case []interface{}:

		if len(v) == 0 {
			fmt.Print("[]")
			break
		}

		fmt.Println("[")
		needNL := false
		for _, e := range v {
			if needNL {
				fmt.Print(",\n")
			}
			needNL = true
			for i := 0; i < depth; i++ {
				fmt.Print("    ")
			}

			printJSON(depth+1, e, false)
		}
		fmt.Println("")

		for i := 0; i < depth-1; i++ {
			fmt.Print("    ")
		}
		fmt.Print("]")
	default:
		fmt.Println("unknown type:", reflect.TypeOf(v))
	}
}
