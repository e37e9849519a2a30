package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsight/track"
)

func newTrackCmd() *cobra.Command {
	var (
		endpoint  string
		host      string
		path      string
		userAgent string
		accept    string
		country   string
	)

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Send a test visit to a running docsight service",
		Example: `  docsight track --endpoint http://localhost:8080/track \
    --host docs.example.com --path /install --user-agent "curl/8.4.0" --accept text/markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := track.NewClient(endpoint)
			if !client.Enabled() {
				return fmt.Errorf("--endpoint is required")
			}
			result, err := client.TrackVisit(cmd.Context(), track.Options{
				Host:      host,
				Path:      path,
				UserAgent: userAgent,
				Accept:    accept,
				Country:   country,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "track endpoint URL")
	cmd.Flags().StringVar(&host, "host", "", "visited host")
	cmd.Flags().StringVar(&path, "path", "/", "visited path")
	cmd.Flags().StringVarP(&userAgent, "user-agent", "u", "", "User-Agent to report")
	cmd.Flags().StringVarP(&accept, "accept", "a", "text/html", "Accept header to report")
	cmd.Flags().StringVar(&country, "country", "", "country code to report")
	return cmd
}
