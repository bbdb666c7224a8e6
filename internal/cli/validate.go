package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orgbuild-labs/orgbuild/internal/fleet"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <fleet.yaml>",
	Short: "Validate a fleet manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := args[0]
		fmt.Fprintf(out, "Fleet manifest validation: %s\n", path)

		result, err := fleet.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
			return fmt.Errorf("fleet manifest validation failed: %w", err)
		}

		if result.Valid {
			f, err := fleet.Load(path)
			if err != nil {
				fmt.Fprintf(out, "  [ OK ] Valid fleet manifest\n")
				return nil
			}
			fmt.Fprintf(out, "  [ OK ] Valid fleet manifest: %d repositories, %d excluded\n", len(f.Repos), len(f.Exclude))
			return nil
		}

		fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(out, "    - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("fleet manifest %s has %d validation issue(s)", path, len(result.Issues))
	},
}
