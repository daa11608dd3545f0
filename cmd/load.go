package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [catalog.ssc ...]",
	Short: "Load catalogs into a universe and report what was built",
	Long: "Load parses the named catalog files (or the manifest's catalog list) " +
		"into a fresh universe and prints a summary. Diagnostics for rejected " +
		"entries go to stderr; the exit status is nonzero only for structural " +
		"parse errors.",
	RunE: runLoad,
}

func init() {
	addLoaderFlags(loadCmd)
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.loadAll(s.catalogPaths(args)); err != nil {
		return err
	}

	bodies := 0
	for _, st := range s.universe.Stars() {
		if sys := s.universe.SolarSystem(st); sys != nil {
			bodies += countBodies(sys.Planets().Bodies())
		}
	}
	fmt.Fprintf(os.Stdout, "loaded %d bodies across %d stars (%d errors, %d warnings)\n",
		bodies, len(s.universe.Stars()), s.rep.ErrorCount(), s.rep.WarningCount())
	return nil
}
