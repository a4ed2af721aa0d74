package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/meshblob/importer"
	"github.com/wippyai/meshblob/mesh"
)

func runDump(env *environment, args []string) error {
	fs := newFlagSet("dump")
	attribute := fs.IntP("attribute", "a", -1, "dump only this attribute id")
	limit := fs.IntP("limit", "n", 0, "print at most this many vertices and indices (0 for all)")
	rest, err := env.parse(fs, args, 1)
	if err != nil {
		return err
	}

	data, err := env.readBlob(rest[0])
	if err != nil {
		return err
	}
	imp := importer.New(importer.WithLogger(env.logger))
	if err := imp.Open(data); err != nil {
		return err
	}
	defer imp.Close()
	m, err := imp.Mesh(0)
	if err != nil {
		return err
	}
	return dumpMesh(env.stdout, m, *attribute, *limit)
}

func dumpMesh(w io.Writer, m *mesh.Data, attribute, limit int) error {
	if attribute >= len(m.Attributes) {
		return fmt.Errorf("attribute %d out of range, mesh has %d", attribute, len(m.Attributes))
	}

	if attribute < 0 && m.IsIndexed() {
		indices, err := m.Indices()
		if err != nil {
			return err
		}
		shown := clip(len(indices), limit)
		parts := make([]string, shown)
		for i := range parts {
			parts[i] = strconv.FormatUint(uint64(indices[i]), 10)
		}
		if shown < len(indices) {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(indices)-shown))
		}
		fmt.Fprintf(w, "indices (%s): %s\n", m.IndexType, strings.Join(parts, " "))
	}

	for id, a := range m.Attributes {
		if attribute >= 0 && id != attribute {
			continue
		}
		fmt.Fprintf(w, "\nattribute %d: %s %s\n", id, a.Name, a.Format)
		if a.Format.IsImplementationSpecific() {
			fmt.Fprintln(w, "  opaque format, values not decoded")
			continue
		}
		values, err := m.AttributeFloats(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, attributeTable(values, clip(len(values), limit)))
	}
	return nil
}

func attributeTable(values [][]float32, rows int) string {
	t := table.New().Border(lipgloss.HiddenBorder()).Headers("VERTEX", "VALUE")
	for v := 0; v < rows; v++ {
		t.Row(strconv.Itoa(v), formatValue(values[v]))
	}
	if rows < len(values) {
		t.Row("...", fmt.Sprintf("%d more", len(values)-rows))
	}
	return t.String()
}

func formatValue(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'g', 6, 32)
	}
	return strings.Join(parts, " ")
}

func clip(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
