//nolint:forbidigo,gosec // test utility allows direct output
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "testserver <page-1.json> [page-2.json]",
		Short: "Serve local menus API fixtures for manual testing",
		Long: "Serves the given JSON files as the menus API at /api/menus. The second file, if set, " +
			"is served for ?page=2. Files are read on each request, so you can edit them while the server is running.",
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // one or two pages
		RunE: func(_ *cobra.Command, args []string) error {
			pages := map[string]string{"1": args[0]}
			if len(args) > 1 {
				pages["2"] = args[1]
			}
			for _, path := range pages {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("fixture %s: %w", path, err)
				}
			}

			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/menus", menusHandler(pages, log))

			addr := fmt.Sprintf(":%d", port)
			log.Info("Test server listening", "url", "http://localhost"+addr+"/api/menus?page=1&type=photo-grafic")
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on") //nolint:mnd // default port
	return cmd
}

func menusHandler(pages map[string]string, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}

		path, ok := pages[page]
		if !ok {
			http.Error(w, "page "+page+" is not configured", http.StatusNotFound)
			log.Warn("Page is not configured", "page", page)
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusInternalServerError)
			log.Error("Failed to read fixture", "path", path, "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
		_, _ = w.Write(content)
		log.Info("Served fixture", "path", path, "bytes", len(content))
	}
}
