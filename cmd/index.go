package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LBV2012-26/Celestia/internal/store"
	"github.com/LBV2012-26/Celestia/internal/telemetry"
)

var indexCmd = &cobra.Command{
	Use:   "index [catalog.ssc ...]",
	Short: "Load catalogs and write the body index database",
	Long: "Index loads the catalogs and writes every body and location into " +
		"a SQLite database for querying by other tools.",
	RunE: runIndex,
}

func init() {
	addLoaderFlags(indexCmd)
	indexCmd.Flags().String("db", "", "index database path (default from config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.loadAll(s.catalogPaths(args)); err != nil {
		return err
	}

	dbPath := s.cfg.IndexPath
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		dbPath = p
	}

	ctx := cmd.Context()
	ix, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	n, err := ix.WriteUniverse(ctx, s.universe)
	if err != nil {
		return err
	}
	s.emitter.Emit(telemetry.Event{
		Kind: telemetry.KindIndexWritten,
		Data: map[string]any{"db": dbPath, "bodies": n},
	})
	fmt.Fprintf(os.Stdout, "indexed %d bodies into %s\n", n, dbPath)
	return nil
}
