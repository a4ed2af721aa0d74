package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/importer"
	"github.com/wippyai/meshblob/internal/digest"
	"github.com/wippyai/meshblob/mesh"
)

type report struct {
	File        string      `yaml:"file"`
	Signature   string      `yaml:"signature"`
	Type        string      `yaml:"type"`
	TypeVersion uint16      `yaml:"type_version"`
	Size        uint64      `yaml:"size"`
	Digest      digest.Hash `yaml:"digest"`
	Mesh        *meshReport `yaml:"mesh,omitempty"`
	Error       string      `yaml:"error,omitempty"`
}

type meshReport struct {
	Primitive    string            `yaml:"primitive"`
	IndexType    string            `yaml:"index_type"`
	IndexCount   uint32            `yaml:"index_count"`
	VertexCount  uint32            `yaml:"vertex_count"`
	IndexDigest  *digest.Hash      `yaml:"index_digest,omitempty"`
	VertexDigest digest.Hash       `yaml:"vertex_digest"`
	Attributes   []attributeReport `yaml:"attributes"`
	Bounds       *boundsReport     `yaml:"bounds,omitempty"`
}

type attributeReport struct {
	Name      string `yaml:"name"`
	Format    string `yaml:"format"`
	Offset    int    `yaml:"offset"`
	Stride    int16  `yaml:"stride"`
	ArraySize uint16 `yaml:"array_size,omitempty"`
}

type boundsReport struct {
	Min [3]float32 `yaml:"min,flow"`
	Max [3]float32 `yaml:"max,flow"`
}

func runInfo(env *environment, args []string) error {
	fs := newFlagSet("info")
	format := fs.String("format", "text", "output format: text or yaml")
	expect := fs.String("expect", "", "fail unless the blob digest equals this hex `digest`")
	rest, err := env.parse(fs, args, 1)
	if err != nil {
		return err
	}
	var want digest.Hash
	if *expect != "" {
		if want, err = digest.Parse(*expect); err != nil {
			return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "--expect")
		}
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

	r := buildReport(rest[0], imp)
	switch *format {
	case "yaml":
		err = writeYAML(env.stdout, r)
	case "text":
		err = writeText(env.stdout, r)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}
	if *expect != "" && r.Digest != want {
		return fmt.Errorf("%s: digest %s does not match expected %s", rest[0], r.Digest, want)
	}
	return nil
}

// buildReport describes an opened blob. Extraction failures are recorded
// in the report rather than returned so the header is still shown.
func buildReport(name string, imp *importer.Importer) *report {
	r := &report{
		File:        name,
		Signature:   imp.Signature().String(),
		Type:        imp.Type().String(),
		TypeVersion: imp.TypeVersion(),
		Size:        imp.Size(),
		Digest:      digest.Blob(imp.Bytes()),
	}
	if imp.MeshCount() == 0 {
		return r
	}
	m, err := imp.Mesh(0)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Mesh = describeMesh(m)
	return r
}

func describeMesh(m *mesh.Data) *meshReport {
	mr := &meshReport{
		Primitive:    m.Primitive.String(),
		IndexType:    m.IndexType.String(),
		IndexCount:   m.IndexCount,
		VertexCount:  m.VertexCount,
		VertexDigest: digest.Buffer(m.VertexData),
	}
	if m.IsIndexed() {
		h := digest.Buffer(m.IndexBytes())
		mr.IndexDigest = &h
	}
	for _, a := range m.Attributes {
		mr.Attributes = append(mr.Attributes, attributeReport{
			Name:      a.Name.String(),
			Format:    a.Format.String(),
			Offset:    a.Offset,
			Stride:    a.Stride,
			ArraySize: a.ArraySize,
		})
	}
	if lo, hi, ok := m.Bounds(); ok {
		mr.Bounds = &boundsReport{Min: lo, Max: hi}
	}
	return mr
}

func writeYAML(w io.Writer, r *report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

var labelStyle = lipgloss.NewStyle().Bold(true)

func writeText(w io.Writer, r *report) error {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("File", r.File)
	line("Signature", r.Signature)
	line("Type", fmt.Sprintf("%s v%d", r.Type, r.TypeVersion))
	line("Size", fmt.Sprintf("%s (%s bytes)", humanize.IBytes(r.Size), humanize.Comma(int64(r.Size))))
	line("Digest", r.Digest.String())
	if r.Error != "" {
		line("Error", r.Error)
	}

	if m := r.Mesh; m != nil {
		line("Primitive", m.Primitive)
		if m.IndexDigest != nil {
			line("Indices", fmt.Sprintf("%s x %s (%s)", humanize.Comma(int64(m.IndexCount)), m.IndexType, m.IndexDigest.Short()))
		} else {
			line("Indices", "none")
		}
		line("Vertices", fmt.Sprintf("%s (%s)", humanize.Comma(int64(m.VertexCount)), m.VertexDigest.Short()))
		if m.Bounds != nil {
			line("Bounds", fmt.Sprintf("%v .. %v", m.Bounds.Min, m.Bounds.Max))
		}

		if len(m.Attributes) > 0 {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("#", "NAME", "FORMAT", "OFFSET", "STRIDE", "ARRAY")
			for i, a := range m.Attributes {
				t.Row(strconv.Itoa(i), a.Name, a.Format,
					strconv.Itoa(a.Offset), strconv.Itoa(int(a.Stride)), strconv.Itoa(int(a.ArraySize)))
			}
			b.WriteString("\n")
			b.WriteString(t.String())
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
