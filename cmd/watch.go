package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LBV2012-26/Celestia/internal/notify"
	"github.com/LBV2012-26/Celestia/internal/telemetry"
	"github.com/LBV2012-26/Celestia/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload catalogs whenever a file in the data directory changes",
	Long: "Watch loads the manifest's catalogs, then monitors the manifest " +
		"directory and rebuilds the universe when a .ssc file changes. " +
		"Subscribers on the notification endpoint receive a reload event " +
		"after every rebuild.",
	RunE: runWatch,
}

func init() {
	addLoaderFlags(watchCmd)
	watchCmd.Flags().String("addr", "", "serve reload notifications on this WebSocket address")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.loadAll(s.man.CatalogPaths()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", s.man.Dir)

	var hub *notify.Hub
	addr := s.cfg.Watch.Addr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
		s.cfg.Watch.Enabled = true
	}
	if s.cfg.Watch.Enabled {
		hub = notify.NewHub()
		defer hub.Close()
		mux := http.NewServeMux()
		mux.Handle("/events", hub)
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "notify: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(os.Stderr, "notifications on ws://%s/events\n", addr)
	}

	w, err := watch.NewWatcher(s.man.Dir)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "stopping")
			return nil

		case change := <-w.Changes:
			fmt.Fprintf(os.Stderr, "%s changed, reloading\n", change.File)
			s.reset()
			loadErr := s.loadAll(s.man.CatalogPaths())
			s.emitter.Emit(telemetry.Event{
				Kind:    telemetry.KindWatchReload,
				Catalog: change.File,
				Data:    map[string]any{"ok": loadErr == nil},
			})

			bodies := 0
			for _, st := range s.universe.Stars() {
				if sys := s.universe.SolarSystem(st); sys != nil {
					bodies += countBodies(sys.Planets().Bodies())
				}
			}
			evt := notify.Event{
				Kind:     "reload",
				Catalog:  change.File,
				Bodies:   bodies,
				Errors:   s.rep.ErrorCount(),
				Warnings: s.rep.WarningCount(),
			}
			if loadErr != nil {
				evt.Kind = "error"
				evt.Message = loadErr.Error()
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", loadErr)
			}
			if hub != nil {
				if err := hub.Publish(ctx, evt); err != nil && ctx.Err() == nil {
					fmt.Fprintf(os.Stderr, "notify: %v\n", err)
				}
			}
		}
	}
}
