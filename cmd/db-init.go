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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/infrastructure/database"
)

// dbInitCmd creates the schema and seeds the badge catalog. Safe to re-run:
// existing tables and badges are left alone.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the database schema and seed the badge catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		ctx := cmd.Context()
		if err := database.InitSchema(ctx, db); err != nil {
			return err
		}
		if schemaOnly {
			return nil
		}
		return database.SeedBadges(ctx, db, database.DefaultBadges)
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("schema-only", false, "create tables only, skip badge seeding")
}
