package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"quantumtie/internal/runtime/runtimetest"
)

func main() {
	addr := pflag.String("addr", ":8089", "listen address")
	token := pflag.String("token", "", "required bearer token (any if empty)")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "fakeruntime"})

	fake := runtimetest.New()
	fake.Token = *token
	for _, d := range []runtimetest.Device{
		{Name: "ibm_torino", Qubits: 133, Operational: true, Pending: 12},
		{Name: "ibm_brisbane", Qubits: 127, Operational: true, Pending: 4},
		{Name: "ibm_sherbrooke", Qubits: 127, Operational: true, Status: "internal"},
		{Name: "simulator_stabilizer", Qubits: 5000, Simulator: true, Operational: true},
	} {
		fake.AddDevice(d)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           logRequests(logger, fake.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("fake runtime listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", "err", err)
	}
	logger.Info("stopped", "jobs", fake.Submits())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}
