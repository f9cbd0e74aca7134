package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/stackscope/pkg/analyzer"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze profiles once and print the result",
		Long: `Analyze one or more public profiles and print the summary.

Examples:
  stackscope analyze --github https://github.com/octocat
  stackscope analyze --twitter https://x.com/golang --speakerdeck https://speakerdeck.com/jane
  stackscope analyze --blog https://go.dev/blog --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := requestFromFlags(cmd)
			asJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered

			ctx := cmd.Context()
			e, err := setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if !asJSON {
				summary, err := e.svc.Summary(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, summary)
				return nil
			}

			result, err := e.svc.Analyze(ctx, req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().String("github", "", "GitHub profile URL")
	cmd.Flags().String("twitter", "", "X (Twitter) profile URL")
	cmd.Flags().String("speakerdeck", "", "Speaker Deck profile URL")
	cmd.Flags().String("blog", "", "blog URL")
	cmd.Flags().Bool("json", false, "print the full analysis as JSON")
	return cmd
}

func requestFromFlags(cmd *cobra.Command) analyzer.Request {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name) //nolint:errcheck // flag is registered
		return v
	}
	return analyzer.Request{
		GitHubURL:      get("github"),
		TwitterURL:     get("twitter"),
		SpeakerDeckURL: get("speakerdeck"),
		BlogURL:        get("blog"),
	}
}
