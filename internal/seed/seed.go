// Package seed loads additional response codes from HCL files so a
// deployment can extend the built-in table without code changes.
//
// A seed file is a list of code blocks labelled by category and code name:
//
//	code "clientError" "conflict" {
//	  status  = 409
//	  message = "Conflict"
//	}
//
//	code "custom" "weird" {
//	  status  = 299
//	  message = "Weird"
//	  data    = { flag = true }
//	}
//
// The optional data attribute accepts any HCL value and is converted to plain
// Go values (string, float64, bool, []any, map[string]any).
package seed

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Code is one decoded code block.
type Code struct {
	Category string
	Name     string
	Status   int
	Message  string
	Data     any
}

type hclFile struct {
	Codes []*hclCode `hcl:"code,block"`
}

type hclCode struct {
	Category string    `hcl:"category,label"`
	Name     string    `hcl:"name,label"`
	Status   int       `hcl:"status"`
	Message  string    `hcl:"message"`
	Data     cty.Value `hcl:"data,optional"`
}

// LoadFile parses the HCL seed file at path.
func LoadFile(path string) ([]Code, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse seed file %s: %w", path, diags)
	}
	return decode(f, path)
}

// Parse parses seed source held in memory; filename is used in diagnostics.
func Parse(src []byte, filename string) ([]Code, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse seed %s: %w", filename, diags)
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) ([]Code, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("decode seed %s: %w", filename, diags)
	}

	out := make([]Code, 0, len(parsed.Codes))
	seen := make(map[[2]string]struct{}, len(parsed.Codes))
	for _, c := range parsed.Codes {
		k := [2]string{c.Category, c.Name}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("seed %s: code %q declared twice in category %q", filename, c.Name, c.Category)
		}
		seen[k] = struct{}{}

		data, err := toNative(c.Data)
		if err != nil {
			return nil, fmt.Errorf("seed %s: code %s.%s: data: %w", filename, c.Category, c.Name, err)
		}
		out = append(out, Code{
			Category: c.Category,
			Name:     c.Name,
			Status:   c.Status,
			Message:  c.Message,
			Data:     data,
		})
	}
	return out, nil
}

// toNative converts v into the value encoding/json would produce when
// decoding the same document.
func toNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			nv, err := toNative(el)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, el := it.Element()
			nv, err := toNative(el)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			out[k.AsString()] = nv
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
