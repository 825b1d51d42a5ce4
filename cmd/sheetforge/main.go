// Package main provides the CLI entry point for sheetforge-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/source"
	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/style"
)

var (
	csvPath     string
	jsonPath    string
	sheetName   string
	noHeader    bool
	appendFlag  bool
	autoSize    bool
	widths      []float64
	freezeCell  string
	zebra       bool
	numberRows  bool
	headerColor string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetforge [output.xlsx]",
		Short: "Build styled xlsx workbooks from tabular sources",
		Long: `sheetforge-go imports CSV or JSON rows into a workbook, applies headers,
styling and layout, and writes the result as an xlsx file.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVar(&csvPath, "csv", "", "CSV input file (first record becomes the header row)")
	rootCmd.Flags().StringVar(&jsonPath, "json", "", "JSON input file (array of flat objects)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Title for the first sheet")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Do not style the first record as a header row")
	rootCmd.Flags().BoolVar(&appendFlag, "append", false, "Append to the output file if it already exists")
	rootCmd.Flags().BoolVar(&autoSize, "auto-size", false, "Auto-size columns from content")
	rootCmd.Flags().Float64SliceVar(&widths, "widths", nil, "Fixed column widths, positionally from column A")
	rootCmd.Flags().StringVar(&freezeCell, "freeze", "", "Freeze panes at the given cell (e.g. B2)")
	rootCmd.Flags().BoolVar(&zebra, "zebra", false, "Apply alternating row background colors to data rows")
	rootCmd.Flags().BoolVar(&numberRows, "number-rows", false, "Auto-number data rows in column A")
	rootCmd.Flags().StringVar(&headerColor, "header-color", "", "Header fill color as RRGGBB hex")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	outputPath := args[0]

	if csvPath != "" && jsonPath != "" {
		return fmt.Errorf("--csv and --json are mutually exclusive")
	}

	opts := sheetforge.DefaultOptions()
	if headerColor != "" {
		defaults := style.NewDefaults()
		defaults.Header = style.Compose(defaults.Header, style.Style{Fill: &style.Fill{Color: headerColor}})
		opts.Defaults = &defaults
	}

	builder, err := newBuilder(outputPath, opts)
	if err != nil {
		return err
	}

	if sheetName != "" {
		if err := builder.SetSheetName(sheetName); err != nil {
			return err
		}
	}

	if csvPath != "" {
		if err := importCSV(builder, csvPath); err != nil {
			return fmt.Errorf("csv import failed: %w", err)
		}
	}
	if jsonPath != "" {
		if err := importJSON(builder, jsonPath); err != nil {
			return fmt.Errorf("json import failed: %w", err)
		}
	}

	if numberRows {
		if err := builder.AutoNumberRows(2, 1); err != nil {
			return err
		}
	}
	if zebra {
		if last := builder.Sheet().MaxRow(); last >= 2 {
			if err := builder.ApplyZebraStriping(2, last, "FFFFFF", "F0F0F0"); err != nil {
				return err
			}
		}
	}
	if autoSize || len(widths) > 0 {
		if err := builder.SetColumnWidths(autoSize, widths); err != nil {
			return err
		}
	}
	if freezeCell != "" {
		if err := builder.FreezePanes(freezeCell); err != nil {
			return err
		}
	}

	if err := builder.Save(outputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("wrote %s\n", outputPath)
	return nil
}

func newBuilder(outputPath string, opts sheetforge.Options) (*sheetforge.Builder, error) {
	if appendFlag {
		if data, err := os.ReadFile(outputPath); err == nil {
			return sheetforge.Load(data, opts)
		}
	}
	return sheetforge.New(opts), nil
}

// importCSV writes the file's first record as a styled header row and the
// remaining records as data, continuing after any existing content.
func importCSV(builder *sheetforge.Builder, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	startRow := builder.Sheet().MaxRow() + 1
	src := source.CSV(file)
	if !noHeader {
		first, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		headers := make([]string, len(first))
		for i, v := range first {
			headers[i] = v.Display()
		}
		if err := builder.AddHeaders(headers, startRow, nil); err != nil {
			return err
		}
		startRow++
	}
	return builder.ImportRows(src, startRow)
}

// importJSON writes each object's values in key order as one row, continuing
// after any existing content.
func importJSON(builder *sheetforge.Builder, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return builder.ImportRows(source.JSON(file), builder.Sheet().MaxRow()+1)
}
