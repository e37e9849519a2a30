package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsight/internal/query"
)

func newTemplatesCmd() *cobra.Command {
	var (
		show string
		host string
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List query templates or show one rendered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := query.NewCatalog()
			if show == "" {
				return printJSON(cmd, catalog.Names())
			}
			sqlText, err := catalog.Render(show, host)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sqlText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&show, "show", "s", "", "render the named template instead of listing")
	cmd.Flags().StringVar(&host, "host", "", "host to scope the rendered template to")
	return cmd
}
