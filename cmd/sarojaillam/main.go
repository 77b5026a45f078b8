package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/server"
	"github.com/sarojaillam/assistant/store"
	"github.com/sarojaillam/assistant/store/db"
)

const version = "0.1.0"

const greetingBanner = `
Saroja Illam assistant %s
mode %q, driver %q, listening on %s:%d
`

var rootCmd = &cobra.Command{
	Use:   "sarojaillam",
	Short: "The Saroja Illam family assistant server",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return errors.Wrap(err, "failed to create db driver")
		}
		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return errors.Wrap(err, "failed to migrate store")
		}

		s := server.NewServer(instanceProfile, storeInstance)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("shutting down", "signal", sig.String())
			s.Shutdown(ctx)
			cancel()
		}()

		fmt.Printf(greetingBanner, instanceProfile.Version, instanceProfile.Mode,
			instanceProfile.Driver, instanceProfile.Addr, instanceProfile.Port)

		if err := s.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `server mode: "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address")
	rootCmd.PersistentFlags().Int("port", 8231, "binding port")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver: "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("saroja")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
}
