package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdldoc/govhdl"
)

var registryPath string

var arraysCmd = &cobra.Command{
	Use:   "arrays <file-or-dir>...",
	Short: "Collect array type names declared across VHDL sources",
	Long: `arrays scans the given files and directory trees for array type
declarations (including subtypes of known array types) and prints the
resulting set. With --registry, a registry file is merged in first and
the updated set is written back.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArrays,
}

func init() {
	arraysCmd.Flags().StringVarP(&registryPath, "registry", "r", "",
		"registry file to merge and update")
	rootCmd.AddCommand(arraysCmd)
}

func runArrays(cmd *cobra.Command, args []string) error {
	ex, err := govhdl.New(govhdl.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	if registryPath != "" {
		if err := ex.LoadArrayTypes(registryPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			src, err := govhdl.DirTree(arg)
			if err != nil {
				return err
			}
			if err := ex.RegisterSourceArrayTypes(src); err != nil {
				return err
			}
		} else if err := ex.RegisterFilesArrayTypes([]string{arg}); err != nil {
			return err
		}
	}

	for _, name := range ex.ArrayTypes() {
		fmt.Println(name)
	}

	if registryPath != "" {
		return ex.SaveArrayTypes(registryPath)
	}
	return nil
}
