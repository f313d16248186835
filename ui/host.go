package ui

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"tagplot/internal"
)

// Host is an explicit handle for one hosted dashboard. Multiple dashboards
// can be hosted independently, each with its own handle.
type Host struct {
	ID   string
	Port int

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
	stopped  bool
}

// Deploy binds the handler to the requested port and serves it. When the
// port is occupied it logs the conflict and tries the next integer port,
// indefinitely, so it does not return until a listener is bound.
func Deploy(handler http.Handler, port int) (*Host, error) {
	log := internal.DefaultLogger
	for {
		log.Info("Starting server on port %d", port)
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			host := &Host{
				ID:       uuid.NewString(),
				Port:     port,
				listener: listener,
				server:   &http.Server{Handler: handler},
			}
			go func() {
				if serveErr := host.server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
					log.Error("dashboard server stopped: %v", serveErr)
				}
			}()
			return host, nil
		}
		if !isAddrInUse(err) {
			return nil, err
		}
		log.Info("Port %d in use! Trying next one %d", port, port+1)
		port++
	}
}

// Stop releases the bound port. Stopping a handle that is not hosted is not
// an error; it returns a descriptive message instead.
func (h *Host) Stop() string {
	if h == nil {
		return "Dashboard is not hosted for it to be stopped. Use Deploy to host the dashboard and later use Stop to free up the port."
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped || h.server == nil {
		return "Dashboard is not hosted for it to be stopped. Use Deploy to host the dashboard and later use Stop to free up the port."
	}
	h.stopped = true
	if err := h.server.Close(); err != nil {
		internal.DefaultLogger.Warn("error closing dashboard server: %v", err)
	}
	return fmt.Sprintf("Dashboard on port %d stopped.", h.Port)
}

// isAddrInUse reports whether err is the address-in-use bind failure.
func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
