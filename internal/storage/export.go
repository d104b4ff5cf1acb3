package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/autodiff/internal/experiment"
)

// ExportJSON writes res as indented JSON to path, or to stdout when path
// is "" or "-".
func ExportJSON(path string, res *experiment.Result) error {
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, res)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, res); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
