package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/meshblob/importer"
	"github.com/wippyai/meshblob/mesh"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 12

type inspectState int

const (
	stateAttributes inspectState = iota
	stateValues
	stateJump
)

type inspectModel struct {
	err      error
	mesh     *mesh.Data
	load     func() (*importer.Importer, error)
	filename string
	header   string
	values   [][]float32
	table    table.Model
	jump     textinput.Model
	first    int
	state    inspectState
}

type loadedMsg struct {
	err    error
	mesh   *mesh.Data
	header string
}

func newInspectModel(filename string, load func() (*importer.Importer, error)) *inspectModel {
	jump := textinput.New()
	jump.Prompt = "vertex: "
	jump.Placeholder = "0"
	jump.Width = 12
	return &inspectModel{
		filename: filename,
		load:     load,
		jump:     jump,
		state:    stateAttributes,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return m.loadBlob
}

func (m *inspectModel) loadBlob() tea.Msg {
	imp, err := m.load()
	if err != nil {
		return loadedMsg{err: err}
	}
	defer imp.Close()
	data, err := imp.Mesh(0)
	if err != nil {
		return loadedMsg{err: err}
	}
	header := fmt.Sprintf("%s %s v%d, %d bytes", imp.Signature(), imp.Type(), imp.TypeVersion(), imp.Size())
	return loadedMsg{mesh: data, header: header}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mesh = msg.mesh
		m.header = msg.header
		m.table = attributeTableModel(msg.mesh)
		return m, nil

	case tea.KeyMsg:
		if m.state == stateJump {
			return m.updateJump(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if m.state == stateAttributes && m.mesh != nil && len(m.mesh.Attributes) > 0 {
				m.openValues()
				return m, nil
			}

		case "esc":
			if m.state == stateValues {
				m.state = stateAttributes
				m.values = nil
				m.err = nil
				return m, nil
			}

		case "g":
			if m.state == stateValues {
				m.state = stateJump
				m.jump.SetValue("")
				return m, m.jump.Focus()
			}

		case "up", "k":
			if m.state == stateValues {
				m.scroll(-1)
				return m, nil
			}

		case "down", "j":
			if m.state == stateValues {
				m.scroll(1)
				return m, nil
			}

		case "pgdown":
			if m.state == stateValues {
				m.scroll(pageSize)
				return m, nil
			}

		case "pgup":
			if m.state == stateValues {
				m.scroll(-pageSize)
				return m, nil
			}
		}
	}

	if m.state == stateAttributes && m.mesh != nil {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *inspectModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v, err := strconv.Atoi(strings.TrimSpace(m.jump.Value())); err == nil {
			m.first = 0
			m.scroll(v)
		}
		m.jump.Blur()
		m.state = stateValues
		return m, nil
	case "esc":
		m.jump.Blur()
		m.state = stateValues
		return m, nil
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m *inspectModel) openValues() {
	id := m.table.Cursor()
	m.first = 0
	m.state = stateValues
	m.values = nil
	m.err = nil
	if m.mesh.Attributes[id].Format.IsImplementationSpecific() {
		return
	}
	m.values, m.err = m.mesh.AttributeFloats(id)
}

func (m *inspectModel) scroll(delta int) {
	m.first += delta
	if last := len(m.values) - 1; m.first > last {
		m.first = last
	}
	if m.first < 0 {
		m.first = 0
	}
}

func attributeTableModel(d *mesh.Data) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 22},
		{Title: "Format", Width: 26},
		{Title: "Offset", Width: 8},
		{Title: "Stride", Width: 7},
		{Title: "Array", Width: 6},
	}
	rows := make([]table.Row, len(d.Attributes))
	for i, a := range d.Attributes {
		rows[i] = table.Row{
			strconv.Itoa(i),
			a.Name.String(),
			a.Format.String(),
			strconv.Itoa(a.Offset),
			strconv.Itoa(int(a.Stride)),
			strconv.Itoa(int(a.ArraySize)),
		}
	}
	height := len(rows) + 1
	if height > pageSize {
		height = pageSize
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
}

func (m *inspectModel) View() string {
	if m.err != nil && m.state == stateAttributes {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.mesh == nil {
		return "Loading blob..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mesh Blob"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.header))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s, %d vertices, %d %s indices\n\n",
		m.mesh.Primitive, m.mesh.VertexCount, m.mesh.IndexCount, m.mesh.IndexType)

	switch m.state {
	case stateAttributes:
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter values • q quit"))

	case stateValues, stateJump:
		a := m.mesh.Attributes[m.table.Cursor()]
		fmt.Fprintf(&b, "%s %s\n\n", nameStyle.Render(a.Name.String()), formatStyle.Render(a.Format.String()))
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		case a.Format.IsImplementationSpecific():
			b.WriteString("opaque format, values not decoded\n")
		default:
			end := min(m.first+pageSize, len(m.values))
			for v := m.first; v < end; v++ {
				fmt.Fprintf(&b, "%6d  %s\n", v, formatValue(m.values[v]))
			}
		}
		b.WriteString("\n")
		if m.state == stateJump {
			b.WriteString(m.jump.View())
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("enter jump • esc cancel"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ scroll • g jump • esc back • q quit"))
		}
	}
	return b.String()
}

func runInspect(env *environment, args []string) error {
	rest, err := env.parse(newFlagSet("inspect"), args, 1)
	if err != nil {
		return err
	}
	filename := rest[0]
	load := func() (*importer.Importer, error) {
		data, err := env.readBlob(filename)
		if err != nil {
			return nil, err
		}
		imp := importer.New(importer.WithLogger(env.logger))
		if err := imp.Open(data); err != nil {
			return nil, err
		}
		return imp, nil
	}

	p := tea.NewProgram(newInspectModel(filename, load), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
