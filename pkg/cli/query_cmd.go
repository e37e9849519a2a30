package cli

import (
	"docsight/internal/query"
	"docsight/internal/store"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var (
		dbPath string
		name   string
		host   string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a query template against a local events database",
		Example: `  docsight query --db docsight_events.duckdb --name sites
  docsight query --db docsight_events.duckdb --name pages --host docs.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := query.NewCatalog()
			sqlText, err := catalog.Render(name, host)
			if err != nil {
				return err
			}

			st, err := store.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			rows, err := st.Query(cmd.Context(), sqlText)
			if err != nil {
				return err
			}
			return printJSON(cmd, rows)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "docsight_events.duckdb", "path to the DuckDB events database")
	cmd.Flags().StringVarP(&name, "name", "n", "default", "template name")
	cmd.Flags().StringVar(&host, "host", "", "host to scope the query to")
	return cmd
}
