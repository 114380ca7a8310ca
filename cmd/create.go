/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/internal/iodb"
	"github.com/mpsense/sampler/internal/iodynamo"
	"github.com/mpsense/sampler/internal/ioschema"
	"github.com/mpsense/sampler/internal/iosqlite"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the sample store schema",
		Long: `Prepare the configured sample store for records.

Backends:
  dynamodb  creates the table keyed by sampleID, an existing
            table is kept
  postgres  creates the samples table with GORM AutoMigrate and
            its indexes, existing tables are dropped after
            confirmation
  sqlite    creates the database file and the samples table

Use --force to skip confirmation and drop existing PostgreSQL tables.

Examples:
  sampler create
  sampler create --backend postgres --force
  sampler create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, backendFlag)
			return runCreate(cmd, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")
	createCmd.Flags().StringP("backend", "b", "",
		"sample store backend: dynamodb, postgres or sqlite")

	return createCmd
}

func runCreate(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	var err error
	switch cfg.SampleStore.Backend {
	case "postgres":
		err = createPostgres(ctx, cmd.InOrStdin(), force)
	case "sqlite":
		err = createSQLite(ctx)
	default:
		err = createDynamo(ctx)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func createDynamo(ctx context.Context) error {
	store, err := iodynamo.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.CreateTable(ctx); err != nil {
		return err
	}
	gn.Info("DynamoDB table <em>%s</em> is ready", cfg.SampleStore.Table)
	return nil
}

func createSQLite(ctx context.Context) error {
	path := cfg.SQLitePath()
	store, err := iosqlite.Open(ctx, path, cfg.SampleStore.Timeout)
	if err != nil {
		return err
	}
	defer store.Close()

	gn.Info("SQLite database <em>%s</em> is ready", path)
	return nil
}

func createPostgres(ctx context.Context, in io.Reader, force bool) error {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if hasTables {
		if !force {
			gn.Warn("\nWarning: Database contains existing tables.")
			gn.Warn("Creating schema will drop ALL existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			if !confirm(in) {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping all existing tables...")
		if err = op.DropAllTables(ctx); err != nil {
			return err
		}
		gn.Info("All tables dropped")
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return err
	}

	gn.Info("\nDatabase schema creation complete!")
	gn.Info("Set <em>sample_store.backend: postgres</em> " +
		"to store captures there.")
	return nil
}

// confirm reads one answer line. Only "yes" and "y" confirm.
func confirm(in io.Reader) bool {
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		gn.Warn("Failed to read user input")
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
