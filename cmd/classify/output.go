package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: use text, json or yaml", format)
	}
}

// writeStructured renders v as JSON or YAML. YAML keys follow the JSON field names.
func writeStructured(w io.Writer, format string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(json.RawMessage(data))
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles a JSON document parses with
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func writeClassification(w io.Writer, format string, out *usecase.ClassifyOutput) error {
	if format != formatText {
		return writeStructured(w, format, out)
	}

	fmt.Fprintf(w, "Category:       %s %s\n", out.Emoji, out.Label)
	fmt.Fprintf(w, "Class id:       %d\n", out.LabelIndex)
	fmt.Fprintf(w, "Confidence:     %s\n", out.ConfidencePercent)
	fmt.Fprintf(w, "Words analyzed: %d of %d\n", out.WordsAnalyzed, out.InputWords)
	fmt.Fprintf(w, "Characters:     %d\n", out.InputChars)
	if out.SourceName != "" {
		fmt.Fprintf(w, "Source:         %s (%s)\n", out.SourceName, out.Source)
	}
	_, err := fmt.Fprintf(w, "Model:          %s\n", out.ModelVersion)
	return err
}

func writeSamples(w io.Writer, format string, names []string) error {
	if format != formatText {
		return writeStructured(w, format, map[string][]string{"samples": names})
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeFeed(w io.Writer, format string, out *usecase.FeedOutput) error {
	if format != formatText {
		return writeStructured(w, format, out)
	}

	fmt.Fprintf(w, "%s (%d items)\n", out.URL, len(out.Items))
	for _, item := range out.Items {
		if _, err := fmt.Fprintf(w, "%s %-8s %6s  %s\n",
			item.Result.Emoji, item.Result.Label, item.Result.ConfidencePercent, item.Title); err != nil {
			return err
		}
	}
	return nil
}
