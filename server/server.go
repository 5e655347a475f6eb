// Package server hosts the HTTP front end and owns the coordinator's
// lifecycle, so the sidecar process dies whenever the server does.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/quizmcp/coordinator"
	"github.com/quizmcp/logger"
)

type Server struct {
	StartTime time.Time
	Svr       *http.Server
	coord     *coordinator.Coordinator
	log       *logger.Logger
}

func NewServer(addr string, routes http.Handler, coord *coordinator.Coordinator) *Server {
	svrCfgs := ServerConfigs()
	return &Server{
		StartTime: time.Now().UTC(),
		coord:     coord,
		log:       logger.NewLogger("Server", uuid.NewString()),
		Svr: &http.Server{
			Handler:      routes,
			Addr:         addr,
			ReadTimeout:  svrCfgs.TimeoutRead,
			WriteTimeout: svrCfgs.TimeoutWrite,
			IdleTimeout:  svrCfgs.TimeoutIdle,
		},
	}
}

func secondsToTimeStr(seconds float64) string {
	duration := time.Duration(int64(seconds)) * time.Second
	timeValue := time.Time{}.Add(duration)
	return timeValue.Format("15:04:05")
}

// returns the current run time of the server
// as a HH:MM:SS formatted string.
func (s *Server) RunTime() string {
	return secondsToTimeStr(time.Since(s.StartTime).Seconds())
}

// forcibly shuts down server and returns total run time in seconds.
func (s *Server) Shutdown() (string, error) {
	s.closeCoordinator()
	if err := s.Svr.Close(); err != nil && err != http.ErrServerClosed {
		return "0", fmt.Errorf("server shutdown failed: %v", err)
	}
	return s.RunTime(), nil
}

func (s *Server) closeCoordinator() {
	if s.coord == nil {
		return
	}
	if err := s.coord.Close(); err != nil {
		s.log.Warnf("coordinator close failed: %v", err)
	}
}

// starts a server that can be shut down via ctrl-c. The agent subprocess
// is stopped before the listener on every shutdown path, including the
// forced one, so no orphan child survives the server.
func (s *Server) Run() {
	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	// listen for syscall signals for process to interrupt/quit
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGUSR1, syscall.SIGUSR2)
	go func() {
		<-sig

		// shutdown signal with grace period of 10 seconds
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 10*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				s.log.Warn("shutdown timed out. forcing exit.")
				if _, err := s.Shutdown(); err != nil {
					log.Fatal(err)
				}
				s.log.Info(fmt.Sprintf("server run time: %s", s.RunTime()))
			}
		}()

		s.log.Info("shutting down server...")
		s.closeCoordinator()
		if err := s.Svr.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		s.log.Info(fmt.Sprintf("server run time: %v", s.RunTime()))
		serverStopCtx()
	}()

	s.log.Info("starting server...")
	if err := s.Svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.closeCoordinator()
		log.Fatal(err)
	}

	<-serverCtx.Done()
}

// start a server that can be shut down using a shutDown bool channel.
func (s *Server) Start(shutDown chan bool) {
	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go func() {
		// blocks until shutDown = true
		// (set by outer test and passed after checks are completed (or failed))
		<-shutDown

		// shutdown signal with grace period of 10 seconds
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 10*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				s.log.Error("shutdown timed out. forcing exit.")
				if _, err := s.Shutdown(); err != nil {
					log.Fatal(err)
				}
				s.log.Info(fmt.Sprintf("server run time: %s", s.RunTime()))
			}
		}()

		s.log.Info("shutting down server...")
		s.closeCoordinator()
		err := s.Svr.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	s.log.Info("starting server...")
	if err := s.Svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.closeCoordinator()
		log.Fatal(err)
	}
	<-serverCtx.Done()
}
