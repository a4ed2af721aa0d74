package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/meshblob"
)

func runVariants(env *environment, args []string) error {
	if _, err := env.parse(newFlagSet("variants"), args, 0); err != nil {
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SIGNATURE", "RESOLVED", "HEADER", "MESH HEADER", "ATTRIBUTE")
	for _, v := range meshblob.Variants() {
		t.Row(v.Signature.String(), v.Signature.Resolve().String(),
			strconv.Itoa(v.HeaderSize), strconv.Itoa(v.MeshHeaderSize), strconv.Itoa(v.AttributeSize))
	}
	_, err := fmt.Fprintln(env.stdout, t.String())
	return err
}
