package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/csp-tools/sutbuild/internal/idgen"
	"github.com/csp-tools/sutbuild/internal/normalize"
	"github.com/csp-tools/sutbuild/internal/platform/config"
	"github.com/csp-tools/sutbuild/internal/sutdb"
	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
)

var (
	convertOutput   string
	convertAuthor   string
	convertSeed     int64
	convertDefaults string
)

var convertCmd = &cobra.Command{
	Use:   "convert <package-name> <image-file>...",
	Short: "Build a .sut file from one or more brush-tip images",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		packageName := args[0]
		imagePaths := args[1:]

		opts := compose.DefaultOptions()
		if convertDefaults != "" {
			loaded, err := config.LoadDefaults(convertDefaults)
			if err != nil {
				return err
			}
			opts = loaded
		}

		brushes := make([]compose.BrushInput, 0, len(imagePaths))
		for _, p := range imagePaths {
			raw, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			img, err := normalize.Normalize(raw)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", p, err)
				continue
			}
			name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
			brushes = append(brushes, compose.BrushInput{
				Name:    name + " (Python)",
				Width:   img.Width,
				Height:  img.Height,
				PNG:     img.PNG,
				Options: opts,
			})
		}
		if len(brushes) == 0 {
			return fmt.Errorf("no usable images")
		}

		var ids *idgen.Source
		mtime := time.Now()
		if convertSeed != 0 {
			ids = idgen.NewSeededSource(convertSeed)
			mtime = time.Unix(0, 0)
		} else {
			ids = idgen.NewSource()
		}

		builder := sutdb.NewBuilder(ids)
		out, err := builder.Emit(sutdb.Package{
			Name:    packageName,
			Author:  convertAuthor,
			Brushes: brushes,
		}, mtime)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}

		output := convertOutput
		if output == "" {
			output = sanitizedOutputName(packageName)
		}
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}

		fmt.Printf("Wrote %s (%d brushes, %d bytes).\n", output, len(brushes), len(out))
		return nil
	},
}

// sanitizedOutputName derives the default output filename from the
// package name the way the original Python server derived its ZIP
// download name: spaces become underscores.
func sanitizedOutputName(packageName string) string {
	return strings.ReplaceAll(packageName, " ", "_") + ".sut"
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output .sut path (default: sanitized <package-name>.sut)")
	convertCmd.Flags().StringVar(&convertAuthor, "author", "", "author name recorded in the package")
	convertCmd.Flags().Int64Var(&convertSeed, "seed", 0, "seed for deterministic UUIDs and a fixed TAR member timestamp (0 = random)")
	convertCmd.Flags().StringVar(&convertDefaults, "defaults", "", "optional HCL file of brush option defaults")
	rootCmd.AddCommand(convertCmd)
}
