package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/format/table"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type imageRecord struct {
	Filename     string `json:"filename" yaml:"filename"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
}

type resultRecord struct {
	Rank      int    `json:"rank" yaml:"rank"`
	ImagePath string `json:"image_path" yaml:"image_path"`
	Caption   string `json:"caption" yaml:"caption"`
}

func checkOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, OutputTable, OutputJSON, OutputYAML)
}

func renderImages(images []gallery.Image, format string) (string, error) {
	records := make([]imageRecord, len(images))
	rows := make([][]string, len(images))
	for i, img := range images {
		records[i] = imageRecord{Filename: img.Filename, RelativePath: img.RelativePath}
		rows[i] = []string{img.Filename, img.RelativePath}
	}
	return render(records, rows, nil, format)
}

func renderResults(results []gallery.SearchResult, format string) (string, error) {
	records := make([]resultRecord, len(results))
	rows := make([][]string, len(results))
	for i, res := range results {
		records[i] = resultRecord{Rank: i + 1, ImagePath: res.ImagePath, Caption: res.Caption}
		rows[i] = []string{fmt.Sprintf("%d.", i+1), res.Caption, res.ImagePath}
	}
	return render(records, rows, []table.Alignment{table.AlignRight}, format)
}

func render(records interface{}, rows [][]string, align []table.Alignment, format string) (string, error) {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case OutputYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(data), nil
	default:
		lines := table.Format(rows, align)
		if len(lines) == 0 {
			return "", nil
		}
		return strings.Join(lines, "\n") + "\n", nil
	}
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
