package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.ssc ...]",
	Short: "Check catalogs for errors without keeping the result",
	Long: "Validate loads the named catalog files (or the manifest's catalog " +
		"list) into a throwaway universe and exits nonzero if any entry was " +
		"rejected or the file was structurally malformed.",
	RunE: runValidate,
}

func init() {
	addLoaderFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	paths := s.catalogPaths(args)
	loadErr := s.loadAll(paths)

	errs := s.rep.ErrorCount()
	warns := s.rep.WarningCount()
	switch {
	case loadErr != nil:
		fmt.Fprintf(os.Stderr, "✗ %v\n", loadErr)
		os.Exit(1)
	case errs > 0:
		fmt.Fprintf(os.Stderr, "✗ %d catalog files: %d errors, %d warnings\n", len(paths), errs, warns)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "✓ %d catalog files: no errors, %d warnings\n", len(paths), warns)
	}
	return nil
}
