package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/usestring/schemagen-mcp/internal/refconfig"
	"github.com/usestring/schemagen-mcp/pkg/contenttype"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// stdinName is the argument that reads the corpus from standard input.
const stdinName = "-"

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// loadRefConfig reads and validates an override table file.
func loadRefConfig(path string) (*schemagen.RefConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ref-config: %w", err)
	}
	return refconfig.Load(data, contenttype.Resolve("", path, data))
}

// defaultOutputPath names the schema file written next to the input:
// articles.json becomes articles_schema.json.
func defaultOutputPath(input string) string {
	if input == stdinName {
		return "corpus_schema.json"
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_schema.json"
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
