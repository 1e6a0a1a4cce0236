// Command irys extracts a table from a file of OCR output and prints it.
//
// The input is either a JSON array of text items ({text, confidence, x,
// y}), a JSON document from a layout service (scanned for markup blocks),
// or a plain markdown/HTML file.
//
// Usage:
//
//	irys -in items.json -columns "Name,ID" -format csv
//	irys -in response.json -format markdown
//	irys -in page.md
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/davissekai/irys"
	"github.com/davissekai/irys/markup"
	"github.com/davissekai/irys/model"
)

func main() {
	in := flag.String("in", "", "Input file: JSON text items, a JSON layout response, or markdown/HTML")
	columnsFlag := flag.String("columns", "", "Comma-separated desired columns")
	format := flag.String("format", "json", "Output format: json, csv, or markdown")
	yTolerance := flag.Float64("y-tolerance", 0, "Row clustering tolerance in pixels (0 = default)")
	unzipRows := flag.Bool("unzip", false, "Split rows the upstream source merged together")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: irys -in <file> [-columns a,b,c] [-format json|csv|markdown]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		slog.Error("reading input", "error", err)
		os.Exit(1)
	}

	extraction := buildExtraction(data)

	if *columnsFlag != "" {
		var columns []string
		for _, c := range strings.Split(*columnsFlag, ",") {
			columns = append(columns, strings.TrimSpace(c))
		}
		extraction = extraction.Columns(columns...)
	}
	if *yTolerance > 0 {
		extraction = extraction.YTolerance(*yTolerance)
	}
	if *unzipRows {
		extraction = extraction.Unzip()
	}

	result, err := extraction.Result(context.Background())
	if err != nil {
		slog.Error("extraction failed", "error", err)
		os.Exit(1)
	}
	if result.Error != "" {
		slog.Warn("nothing found", "detail", result.Error)
	}

	switch *format {
	case "csv":
		fmt.Print(result.Table.ToCSV())
	case "markdown":
		fmt.Print(result.Table.ToMarkdown())
	default:
		out, err := sonic.MarshalIndent(result, "", "  ")
		if err != nil {
			slog.Error("encoding result", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	}
}

// buildExtraction guesses the input shape: a JSON array of text items, a
// JSON tree to scan for markup blocks, or raw markdown/HTML text.
func buildExtraction(data []byte) *irys.Extraction {
	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, "[") {
		var items []model.TextItem
		if err := sonic.Unmarshal(data, &items); err == nil && len(items) > 0 && items[0].Text != "" {
			return irys.FromItems(items)
		}
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if blocks, err := markup.CollectBlocksJSON(data); err == nil && len(blocks) > 0 {
			return irys.FromMarkup(blocks...)
		}
	}

	return irys.FromMarkup(trimmed)
}
