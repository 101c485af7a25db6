package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boogeyman0929/chat-backend/internal/app"
	"github.com/boogeyman0929/chat-backend/internal/auth"
	"github.com/boogeyman0929/chat-backend/internal/config"
	"github.com/boogeyman0929/chat-backend/internal/log"
	"github.com/boogeyman0929/chat-backend/internal/store/sqlite"
)

var (
	configPath string
	flagAddr   string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:          "chat-server",
		Short:        "Room-based chat server with key-gated logins",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address")

	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage provisioned access keys",
	}
	keyCmd.AddCommand(
		&cobra.Command{
			Use:   "add <label>",
			Short: "Provision a new access key and print it once",
			Args:  cobra.ExactArgs(1),
			RunE:  runKeyAdd,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List provisioned access keys",
			RunE:  runKeyList,
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a provisioned access key",
			Args:  cobra.ExactArgs(1),
			RunE:  runKeyRemove,
		},
	)

	root.AddCommand(serveCmd, keyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := log.New(logLevel)

	cfg, path, err := config.Load(logger, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UpdateFrom(config.Config{Addr: flagAddr, LogLevel: logLevel})
	logger = log.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().Str("addr", cfg.Addr).Str("config", path).Msg("starting chat server")
	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runKeyAdd(cmd *cobra.Command, args []string) error {
	st, err := openKeyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	key, rec, err := auth.ProvisionKey(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("key %d (%s) created\n", rec.ID, rec.Label)
	fmt.Printf("access key (shown once): %s\n", key)
	return nil
}

func runKeyList(cmd *cobra.Command, _ []string) error {
	st, err := openKeyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	keys, err := st.ListKeys(cmd.Context())
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Printf("%d\t%s\t%s\n", k.ID, k.Label, k.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runKeyRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid key id %q", args[0])
	}

	st, err := openKeyStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return st.DeleteKey(cmd.Context(), id)
}

func openKeyStore() (*sqlite.SQLiteStore, error) {
	logger := log.New(logLevel)

	cfg, _, err := config.Load(logger, configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	return st, nil
}
