package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/level"
	"github.com/vovakirdan/tui-lander/internal/level/formats"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a level between the YAML and binary formats",
	Long: `Read a level file (.yaml or .dat), validate it and write it in the
format named by the output extension: .dat for the binary asset, .yaml or .yml
for the authoring format. The level number and name of a .dat file come from
its file name, so name a .dat output like 03-the-long-fall.dat.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(_ *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	ext := strings.ToLower(filepath.Ext(out))
	if !formats.IsSupported(out) {
		return fmt.Errorf("output %s: expected one of %v", out, formats.FormatExtensions())
	}

	lvl, err := level.LoadFile(in)
	if err != nil {
		return err
	}

	var data []byte
	switch ext {
	case ".dat":
		data = formats.EncodeLevel(lvl.ToAsset())
	default:
		data, err = formats.MarshalYAML(lvl.ToAsset())
		if err != nil {
			return fmt.Errorf("encoding %s: %w", out, err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Wrote %s: %d polygons, %d triggers, %d bytes\n",
		out, len(lvl.Polygons()), len(lvl.Triggers()), len(data))
	return nil
}
