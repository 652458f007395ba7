package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/catalog"
	"github.com/abhisek/coursebuddy/internal/server"
	"github.com/abhisek/coursebuddy/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve assistant sessions over HTTP and WebSocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}
		watch, _ := cmd.Flags().GetString("watch")
		if watch == "" {
			watch = cfg.CatalogPath
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Ping(ctx); err != nil {
			return fmt.Errorf("database not reachable: %w", err)
		}

		deps, err := newSessionDeps(ctx, st)
		if err != nil {
			return err
		}
		timing := cfg.SessionTiming()
		mgr := server.NewManager(func(courseID string) *session.Session {
			return session.New(timing, deps, courseID)
		}, cfg.Session.TTL)

		if watch != "" {
			im := &catalog.Importer{Courses: st.CourseRepo()}
			go func() {
				if err := im.Watch(ctx, watch, nil); err != nil {
					slog.Error("Catalog watcher stopped", "path", watch, "error", err)
				}
			}()
		}

		return server.New(mgr, st.CourseRepo()).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from COURSEBUDDY_LISTEN_ADDR)")
	serveCmd.Flags().String("watch", "", "Catalog file to import and re-import on change")
}

