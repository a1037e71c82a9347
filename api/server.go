package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Serve runs the HTTP server until SIGINT or SIGTERM. The cleanup functions
// run after the server has drained.
func (app *Application) Serve(mux *http.ServeMux, cleanup ...func()) error {
	srv := &http.Server{
		Addr:         app.Config.HTTPPort,
		Handler:      app.BuildRoutes(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	shutdownErr := make(chan error, 1)

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
		s := <-shutdown
		fmt.Printf("shutting down server with signal %v\n", s)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			shutdownErr <- err
			return
		}

		fmt.Println("completing background tasks before shutting down...")
		for _, fn := range cleanup {
			fn()
		}
		shutdownErr <- nil
	}()

	fmt.Printf("starting server on port %v\n", app.Config.HTTPPort)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	fmt.Printf("stopped server %v\n", app.Config.HTTPPort)

	return nil
}
