// Command fakecrm runs a fake CRM listing server for local development.
// Point the dashboard at it with PLACAR_UPSTREAM_BASE_URL and any non-empty
// PLACAR_UPSTREAM_API_KEY to exercise the live fetch path end to end.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/placarvendas/placar/internal/fakecrm"
	"github.com/placarvendas/placar/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	var (
		addr = flag.String("addr", ":9081", "listen address")
		rows = flag.Int("rows", 75, "number of listing rows to generate")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Named("fakecrm")
	ctx := context.Background()

	mux := http.NewServeMux()
	fakecrm.NewServer(*rows, nil).Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info(ctx, "fake CRM listening", logger.String("addr", *addr), logger.Int("rows", *rows))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		os.Stderr.WriteString("fake CRM server failed: " + err.Error() + "\n")
	}
}
