package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	depset "github.com/albertocavalcante/go-depset"
)

const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

var outputFormats = []string{OutputText, OutputJSON, OutputYAML, OutputTable}

// baseGroupLabel labels base dependencies in table output.
const baseGroupLabel = "dependencies"

func joinFormats() string {
	return strings.Join(outputFormats, ", ")
}

func validateOutput(output string) error {
	if !slices.Contains(outputFormats, output) {
		return fmt.Errorf("unknown output format: %q (must be one of %s)", output, joinFormats())
	}
	return nil
}

func encode(output string, set *depset.ResolvedSet) ([]byte, error) {
	switch output {
	case OutputText:
		return encodeText(set), nil
	case OutputJSON:
		return encodeJSON(set)
	case OutputYAML:
		return yaml.Marshal(set)
	case OutputTable:
		return encodeTable(set), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", output)
	}
}

// encodeText writes one specifier per line.
func encodeText(set *depset.ResolvedSet) []byte {
	var buf bytes.Buffer
	for _, s := range set.Specifiers() {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func encodeJSON(set *depset.ResolvedSet) ([]byte, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeTable(set *depset.ResolvedSet) []byte {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.AppendHeader(table.Row{"Specifier", "Group", "Via"})
	for _, e := range set.Entries {
		group := e.Group
		if group == "" {
			group = baseGroupLabel
		}
		t.AppendRow(table.Row{e.Specifier, group, e.Via})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return buf.Bytes()
}
