// Package format renders query payloads as human-readable text for tool
// responses.
package format

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// Rows renders a list of records as an aligned text table. Column order is
// alphabetical so the output is stable across runs.
func Rows(rows []map[string]interface{}) string {
	if len(rows) == 0 {
		return "No results."
	}

	columns := columnsOf(rows)

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cell(row[col])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	sb.WriteString(fmt.Sprintf("\n%d row(s)", len(rows)))
	return sb.String()
}

// Record renders a single record as "field: value" lines, one per field,
// in alphabetical field order.
func Record(record map[string]interface{}) string {
	if len(record) == 0 {
		return "No results."
	}

	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for _, field := range fields {
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(cell(record[field]))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Value renders an arbitrary query payload: a list of records, a single
// record, or a scalar.
func Value(v interface{}) string {
	switch typed := v.(type) {
	case []map[string]interface{}:
		return Rows(typed)
	case map[string]interface{}:
		return Record(typed)
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(typed))
		for _, item := range typed {
			record, ok := item.(map[string]interface{})
			if !ok {
				return fmt.Sprintf("%v", v)
			}
			rows = append(rows, record)
		}
		return Rows(rows)
	case nil:
		return "No results."
	default:
		return fmt.Sprintf("%v", v)
	}
}

func columnsOf(rows []map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for col := range row {
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

func cell(v interface{}) string {
	if v == nil {
		return "-"
	}
	switch typed := v.(type) {
	case float64:
		// JSON numbers decode as float64; print integers without a fraction.
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}
		return fmt.Sprintf("%.2f", typed)
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}
