package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/budgetproject/backend/internal/controllers/web"
	"github.com/budgetproject/backend/internal/models"
	"github.com/budgetproject/backend/internal/router"
	"github.com/budgetproject/backend/internal/store"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all projects, categories and expenses as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := connect()
			if err != nil {
				return err
			}
			defer closeDB()

			data, err := store.New(models.DB).Export(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return writeExport(cmd.OutOrStdout(), data)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}

			return writeExportFile(f, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the export to (default: stdout)")

	return cmd
}

// writeExportFile writes the export and closes the file. Errors on close
// are returned as the data might not have been written.
func writeExportFile(f io.WriteCloser, data map[string]json.RawMessage) (err error) {
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return writeExport(f, data)
}

func writeExport(w io.Writer, data map[string]json.RawMessage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(web.ExportResponse{
		Version:      router.Version,
		Data:         data,
		CreationTime: time.Now(),
		Clacks:       "GNU Terry Pratchett",
	})
}
