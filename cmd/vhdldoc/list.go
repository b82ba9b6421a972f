package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hdldoc/govhdl"
)

var listCmd = &cobra.Command{
	Use:   "list <file>...",
	Short: "List declarations found in VHDL files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ex, err := govhdl.New(govhdl.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	for _, path := range args {
		objects, err := ex.ExtractObjectsFromFile(path)
		if err != nil {
			return err
		}
		heading.Printf("%s:\n", path)
		for _, obj := range objects {
			printObject(ex, obj)
		}
	}
	return nil
}

func printObject(ex *govhdl.Extractor, obj govhdl.Object) {
	for _, line := range obj.Desc() {
		color.Yellow("  --%s", line)
	}
	switch o := obj.(type) {
	case *govhdl.Function:
		fmt.Printf("  %s\n", o.Prototype())
	case *govhdl.Procedure:
		fmt.Printf("  %s\n", o.Prototype())
	case *govhdl.Component:
		printComponent(ex, o)
	case *govhdl.Subtype:
		fmt.Printf("  subtype %s is %s\n", o.Name(), o.BaseType())
	case *govhdl.Constant:
		fmt.Printf("  constant %s : %s\n", o.Name(), o.BaseType())
	case *govhdl.Type:
		fmt.Printf("  type %s (%s)\n", o.Name(), o.Class())
	default:
		fmt.Printf("  %s %s\n", obj.Kind(), obj.Name())
	}
}

func printComponent(ex *govhdl.Extractor, c *govhdl.Component) {
	color.Green("  component %s", c.Name())
	for _, g := range c.Generics() {
		fmt.Printf("    generic %s\n", g)
	}
	sections := c.Sections()
	for i, p := range c.Ports() {
		if label, ok := sections[i]; ok {
			color.Magenta("    -- %s --", label)
		}
		suffix := ""
		if ex.IsArrayType(p.DataType) {
			suffix = "  [array]"
		}
		fmt.Printf("    port %s%s\n", p, suffix)
	}
}
