package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/bikedash/internal/server"
	"github.com/spf13/cobra"
)

var (
	srvAddr  string
	srvWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve dashboards over HTTP (JSON API + websocket reload notifications)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		addr := c.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = srvAddr
		}
		watch := c.Watch
		if cmd.Flags().Changed("watch") {
			watch = srvWatch
		}
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		lopt, err := loadOptions()
		if err != nil {
			return err
		}
		logger := log.New(os.Stderr, "[bikedash] ", log.LstdFlags)
		s := server.New(ds, server.Options{
			Dashboard:   dashboardOptions(0),
			Load:        lopt,
			ReadTimeout: time.Duration(c.ReadTimeoutSec) * time.Second,
			Logger:      logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if watch {
			go func() {
				if err := s.Watch(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "⚠ Warning: watch disabled: %v\n", err)
				}
			}()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s (%d records) on %s\n", ds.Path, len(ds.Records), addr)
		return s.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (overrides config listen_addr)")
	serveCmd.Flags().BoolVar(&srvWatch, "watch", false, "reload the dataset when the file changes")
}

