package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsight/internal/classify"
)

type classifyResult struct {
	Category string `json:"category"`
	Agent    string `json:"agent"`
	Filtered bool   `json:"filtered"`
	PageView bool   `json:"page_view"`
}

func newClassifyCmd(output *outputFormat) *cobra.Command {
	var (
		userAgent string
		accept    string
		host      string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a visitor from request headers",
		Example: `  docsight classify --user-agent "curl/8.4.0" --accept text/markdown
  docsight classify --user-agent "Googlebot/2.1" --host docs.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class := classify.Classify(userAgent, accept, host)
			result := classifyResult{
				Category: string(class.Category),
				Agent:    class.Agent,
				Filtered: class.Filtered,
				PageView: classify.IsPageView(accept),
			}

			if *output == "table" {
				fmt.Fprintf(cmd.OutOrStdout(), "category\t%s\nagent\t%s\nfiltered\t%v\npage_view\t%v\n",
					result.Category, result.Agent, result.Filtered, result.PageView)
				return nil
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&userAgent, "user-agent", "u", "", "User-Agent header value")
	cmd.Flags().StringVarP(&accept, "accept", "a", "", "Accept header value")
	cmd.Flags().StringVar(&host, "host", "", "request host (for preview host detection)")
	return cmd
}
