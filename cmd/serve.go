/*
Copyright © 2024 Dean
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	v1 "filebot/handler/http/v1"
	"filebot/src/log"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat webhook server",
	Long:  `The serve command starts an HTTP server that accepts chat events and answers with the bot's replies.`,
	RunE:  RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) error {
	logger := log.WithName("serve")

	d, err := buildDispatcher(cmd.Context())
	if err != nil {
		return err
	}

	// Setup gin router
	r := gin.New()
	r.Use(gin.Recovery())

	// Register routes
	v1.NewHandler(d).RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error(err, "server failed")
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		logger.Info("invalid shutdown timeout, using default", "value", viper.GetString("server.shutdown_timeout"))
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(err, "server forced to shutdown")
	}

	logger.Info("server exited")
	return nil
}
