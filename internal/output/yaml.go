package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML serializes v to Stdout as YAML.
func PrintYAML(v interface{}) error {
	return writeYAML(Stdout, v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Marshal renders v in format f for callers that need the text itself,
// such as MCP tool results.
func Marshal(f Format, v interface{}) (string, error) {
	var buf stringWriter
	if err := Fprint(&buf, f, v); err != nil {
		return "", err
	}
	return string(buf), nil
}

type stringWriter []byte

func (s *stringWriter) Write(p []byte) (int, error) {
	*s = append(*s, p...)
	return len(p), nil
}
