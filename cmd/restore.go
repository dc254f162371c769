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
	restoreInputKey  = "backup.restore.input"
	restoreGzipKey   = "backup.restore.gzip"
	restoreTablesKey = "backup.restore.tables"
	restoreBatchKey  = "backup.restore.batch_size"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the database from an NDJSON backup",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inputPath := viper.GetString(restoreInputKey)
		gzipEnabled := viper.GetBool(restoreGzipKey)
		tableList := tablesFromConfig(restoreTablesKey)
		batchSize := viper.GetInt(restoreBatchKey)

		if inputPath == "" {
			return fmt.Errorf("--input is required (use - for stdin)")
		}
		if !gzipEnabled && inputPath != "-" && strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
			gzipEnabled = true
		}

		service, cleanup, err := newBackupService(batchSize)
		if err != nil {
			return err
		}
		defer cleanup()

		var reader io.Reader = cmd.InOrStdin()
		if inputPath != "-" {
			file, ferr := os.Open(inputPath)
			if ferr != nil {
				return fmt.Errorf("open backup file: %w", ferr)
			}
			defer file.Close()
			reader = file
		}
		if gzipEnabled {
			gz, gerr := gzip.NewReader(reader)
			if gerr != nil {
				return fmt.Errorf("open gzip stream: %w", gerr)
			}
			defer gz.Close()
			reader = gz
		}

		var opts []backup.ImportOption
		if len(tableList) > 0 {
			opts = append(opts, backup.WithImportTables(tableList))
		}
		return service.Import(cmd.Context(), reader, opts...)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringP("input", "i", "-", "backup path (- for stdin)")
	restoreCmd.Flags().Bool("gzip", false, "read a gzip stream")
	restoreCmd.Flags().StringSlice("tables", nil, "restrict restore to these tables")
	restoreCmd.Flags().Int("batch", 0, "rows inserted per batch")

	bindFlagToViper(restoreInputKey, restoreCmd.Flags().Lookup("input"))
	bindFlagToViper(restoreGzipKey, restoreCmd.Flags().Lookup("gzip"))
	bindFlagToViper(restoreTablesKey, restoreCmd.Flags().Lookup("tables"))
	bindFlagToViper(restoreBatchKey, restoreCmd.Flags().Lookup("batch"))
}
