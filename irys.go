// Package irys reconstructs clean, rectangular tables from raw
// optical-character-recognition output and normalizes their columns to a
// caller-specified schema.
//
// Three input forms are supported: geometric text fragments from an OCR
// engine, markdown/HTML table markup from a hosted layout service, and
// anchored layout-service tables. Basic usage:
//
//	result, err := irys.FromItems(items).
//	    Columns("Name", "ID").
//	    Result(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Table.ToCSV())
//
// An extraction is a pure, synchronous transformation: nothing is
// persisted and abandoning one mid-flight (by cancelling the context the
// enclosing service owns) leaves no state behind. The optional semantic
// column mapper is the only network call inside the pipeline, and every
// one of its failures falls back to the built-in heuristic.
package irys

import (
	"context"
	"errors"
	"log/slog"

	"github.com/davissekai/irys/layout"
	"github.com/davissekai/irys/mapper"
	"github.com/davissekai/irys/markup"
	"github.com/davissekai/irys/model"
	"github.com/davissekai/irys/tables"
	"github.com/davissekai/irys/unzip"
)

// ErrNoInput is returned when an extraction is started without any input
// source.
var ErrNoInput = errors.New("no input: provide text items, markup blocks, or a layout document")

// Result is the outcome of one extraction. Error is set, with the table
// still present (possibly empty), when no table could be found; that is
// not a hard failure.
type Result struct {
	Table       model.Table        `json:"table"`
	Zones       []model.ColumnZone `json:"column_zones,omitempty"`
	RowCount    int                `json:"row_count"`
	ColumnCount int                `json:"column_count"`
	Error       string             `json:"error,omitempty"`
}

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceItems
	sourceMarkup
	sourceLayout
)

// Extraction is a fluent builder for one extraction run. Configure it
// with the chained methods and finish with Result.
type Extraction struct {
	source  sourceKind
	items   []model.TextItem
	blocks  []string
	doc     *layout.Document
	options ExtractOptions
}

// FromItems starts an extraction from geometric OCR text fragments.
//
// Example:
//
//	result, err := irys.FromItems(items).Columns("Name", "ID").Result(ctx)
func FromItems(items []model.TextItem) *Extraction {
	return &Extraction{
		source:  sourceItems,
		items:   items,
		options: defaultOptions(),
	}
}

// FromMarkup starts an extraction from free-text blocks suspected to
// contain markdown or HTML table markup.
func FromMarkup(blocks ...string) *Extraction {
	return &Extraction{
		source:  sourceMarkup,
		blocks:  blocks,
		options: defaultOptions(),
	}
}

// FromLayout starts an extraction from an anchored layout-service
// document. Row unzipping defaults to on for this source: the upstream
// engine is known to merge adjacent logical rows.
func FromLayout(doc *layout.Document) *Extraction {
	opts := defaultOptions()
	opts.unzip = true
	return &Extraction{
		source:  sourceLayout,
		doc:     doc,
		options: opts,
	}
}

// Columns sets the desired output columns, in order. The final table is
// restricted to exactly these columns.
func (e *Extraction) Columns(columns ...string) *Extraction {
	e.options.columns = append([]string(nil), columns...)
	return e
}

// YTolerance overrides the geometric row-clustering tolerance in pixels.
func (e *Extraction) YTolerance(px float64) *Extraction {
	e.options.yTolerance = px
	return e
}

// Unzip enables merged-row splitting for sources that are known to merge
// multiple logical rows into one.
func (e *Extraction) Unzip() *Extraction {
	e.options.unzip = true
	return e
}

// Mapper sets the semantic-matching collaborator consulted before the
// local column-mapping heuristic.
func (e *Extraction) Mapper(m mapper.Mapper) *Extraction {
	e.options.mapper = m
	return e
}

// Logger sets the logger used for collaborator fallbacks and pipeline
// diagnostics.
func (e *Extraction) Logger(l *slog.Logger) *Extraction {
	e.options.logger = l
	return e
}

// Result runs the extraction. The context bounds the optional semantic
// mapping call; the pipeline itself is synchronous and holds no state, so
// callers enforcing an overall deadline can simply abandon the call.
func (e *Extraction) Result(ctx context.Context) (*Result, error) {
	table, zones, notFound, err := e.sourceTable(ctx)
	if err != nil {
		return nil, err
	}

	if e.options.unzip {
		table = unzip.Rows(table)
	}

	if len(e.options.columns) > 0 && notFound == "" {
		mapping := e.mapColumns(ctx, table.Headers)
		mapping = mapper.RefineIDColumns(table, mapping)
		table = mapper.Project(table, mapping)
		table = mapper.DropHeaderRows(table, e.options.columns)
	}

	return &Result{
		Table:       table,
		Zones:       zones,
		RowCount:    table.RowCount(),
		ColumnCount: table.ColumnCount(),
		Error:       notFound,
	}, nil
}

// sourceTable builds the intermediate table from whichever input the
// extraction was started with. notFound carries the descriptive "nothing
// found" message for results that are empty but not failures.
func (e *Extraction) sourceTable(ctx context.Context) (table model.Table, zones []model.ColumnZone, notFound string, err error) {
	switch e.source {
	case sourceItems:
		if len(e.items) == 0 {
			return model.Empty(e.options.columns), nil, "no text items to reconstruct", nil
		}
		r := tables.NewReconstructor()
		if err := r.Configure(tables.Config{YTolerance: e.options.yTolerance}); err != nil {
			return model.Table{}, nil, "", err
		}
		table, zones = r.Reconstruct(e.items, e.options.columns)
		return table, zones, "", nil

	case sourceMarkup:
		found := markup.ParseBlocks(ctx, e.blocks)
		best, ok := markup.BestTable(found)
		if !ok {
			return model.Empty(e.options.columns), nil, "no table found in markup", nil
		}
		return best, nil, "", nil

	case sourceLayout:
		if e.doc == nil {
			return model.Table{}, nil, "", ErrNoInput
		}
		found := layout.Tables(e.doc)
		best, ok := markup.BestTable(found)
		if !ok {
			return model.Empty(e.options.columns), nil, "no tables detected in the document", nil
		}
		return best, nil, "", nil

	default:
		return model.Table{}, nil, "", ErrNoInput
	}
}

// mapColumns consults the configured semantic collaborator first and
// falls back to the local heuristic on any failure. Collaborator failure
// never aborts an extraction.
func (e *Extraction) mapColumns(ctx context.Context, extracted []string) model.ColumnMapping {
	if e.options.mapper != nil {
		mapping, err := e.options.mapper.MapColumns(ctx, extracted, e.options.columns)
		if err == nil {
			return mapping
		}
		e.logger().Warn("semantic column mapping failed, using local heuristic", "error", err)
	}
	return mapper.MapColumns(extracted, e.options.columns)
}

func (e *Extraction) logger() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return slog.Default()
}
