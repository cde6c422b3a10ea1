package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"pubident/internal/domain"
)

// readBlobFile reads a base64 blob file; "-" reads stdin.
func readBlobFile(path string, stdin io.Reader) (domain.SignedBlob, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(b)))
	if err != nil {
		return nil, fmt.Errorf("%s: not a base64 blob: %w", path, err)
	}
	return domain.SignedBlob(raw), nil
}

// writeBlob writes blob as base64 to path, or to w when path is empty.
func writeBlob(path string, blob domain.SignedBlob, w io.Writer) error {
	line := base64.StdEncoding.EncodeToString(blob) + "\n"
	if path == "" {
		_, err := io.WriteString(w, line)
		return err
	}
	return os.WriteFile(path, []byte(line), 0o644)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
