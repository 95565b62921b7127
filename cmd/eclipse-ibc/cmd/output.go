package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func printOutput(w io.Writer, format string, v any) error {
	var (
		bz  []byte
		err error
	)

	switch format {
	case OutputJSON:
		bz, err = json.MarshalIndent(v, "", "  ")
	case OutputYAML:
		bz, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q, expected %s or %s", format, OutputJSON, OutputYAML)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(bz))
	return err
}

// print renders v in the configured output format.
func (ctx *Context) print(w io.Writer, v any) error {
	return printOutput(w, ctx.Config.Output, v)
}
