package markup

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"

	"github.com/davissekai/irys/model"
)

// CollectBlocks walks a decoded JSON tree and returns, in traversal
// order, every string that looks like it contains table markup: a pipe
// with a newline, or an opening <table tag.
func CollectBlocks(node any) []string {
	var out []string
	collectBlocks(node, &out)
	return out
}

func collectBlocks(node any, out *[]string) {
	switch v := node.(type) {
	case string:
		if (strings.Contains(v, "|") && strings.Contains(v, "\n")) ||
			strings.Contains(strings.ToLower(v), "<table") {
			*out = append(*out, v)
		}
	case []any:
		for _, item := range v {
			collectBlocks(item, out)
		}
	case map[string]any:
		for _, value := range v {
			collectBlocks(value, out)
		}
	}
}

// CollectBlocksJSON decodes a raw JSON document and collects its
// markup-bearing strings.
func CollectBlocksJSON(raw []byte) ([]string, error) {
	var tree any
	if err := sonic.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return CollectBlocks(tree), nil
}

// ParseBlocks parses every block for markdown and HTML tables,
// concurrently across blocks, and returns all tables found in block
// order.
func ParseBlocks(ctx context.Context, blocks []string) []model.Table {
	if len(blocks) == 0 {
		return nil
	}

	perBlock := make([][]model.Table, len(blocks))

	g, _ := errgroup.WithContext(ctx)
	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			found := ParseMarkdown(block)
			found = append(found, ParseHTML(block)...)
			perBlock[i] = found
			return nil
		})
	}
	// Workers only fill their own slot and never fail.
	_ = g.Wait()

	var tables []model.Table
	for _, found := range perBlock {
		tables = append(tables, found...)
	}
	return tables
}

// BestTable picks the table maximizing (row count, column count)
// lexicographically: more rows wins, ties broken by more columns. The
// earliest of equals is kept. ok is false when no tables were given.
func BestTable(tables []model.Table) (best model.Table, ok bool) {
	for _, t := range tables {
		if !ok {
			best, ok = t, true
			continue
		}
		if t.RowCount() > best.RowCount() ||
			(t.RowCount() == best.RowCount() && t.ColumnCount() > best.ColumnCount()) {
			best = t
		}
	}
	return best, ok
}
