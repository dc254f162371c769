/*
Copyright © 2026 Atlas Lingo

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlaslingo/darlingo/internal/usecase/backup"
)

const (
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportTablesKey = "backup.export.tables"
	exportBatchKey  = "backup.export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the database as an NDJSON backup",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		tableList := tablesFromConfig(exportTablesKey)
		batchSize := viper.GetInt(exportBatchKey)

		if outputPath == "" {
			return fmt.Errorf("--output is required (use - for stdout)")
		}
		if !gzipEnabled && outputPath != "-" && strings.HasSuffix(strings.ToLower(outputPath), ".gz") {
			gzipEnabled = true
		}

		service, cleanup, err := newBackupService(batchSize)
		if err != nil {
			return err
		}
		defer cleanup()

		var writer io.Writer = cmd.OutOrStdout()
		if outputPath != "-" {
			file, ferr := os.Create(outputPath)
			if ferr != nil {
				return fmt.Errorf("create output file: %w", ferr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}
		if gzipEnabled {
			gz := gzip.NewWriter(writer)
			defer func() {
				if cerr := gz.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = gz
		}

		var opts []backup.ExportOption
		if len(tableList) > 0 {
			opts = append(opts, backup.WithTables(tableList))
		}
		return service.Export(cmd.Context(), writer, opts...)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "-", "output path (- for stdout)")
	exportCmd.Flags().Bool("gzip", false, "gzip the output stream")
	exportCmd.Flags().StringSlice("tables", nil, "restrict export to these tables")
	exportCmd.Flags().Int("batch", 0, "rows fetched per batch")

	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
	bindFlagToViper(exportTablesKey, exportCmd.Flags().Lookup("tables"))
	bindFlagToViper(exportBatchKey, exportCmd.Flags().Lookup("batch"))
}
