// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/spf13/cobra"
)

// ErrInvalidPayload is returned by enqueue for a payload that is not JSON.
var ErrInvalidPayload = errors.New("payload must be valid JSON")

// Factory opens the client runtime for a command. It runs after flag
// parsing, so it may read the persistent flags of cmd.
type Factory func(cmd *cobra.Command) (Client, error)

// NewRootCommand returns the story-sync client command tree backed by the
// local stores named in the configuration.
func NewRootCommand(build models.AppBuildInfo) *cobra.Command {
	return newRootCommand(build, OpenApp)
}

func newRootCommand(build models.AppBuildInfo, open Factory) *cobra.Command {
	root := &cobra.Command{
		Use:           "story-sync",
		Short:         "Offline-first sync client for story projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "JSON config file path")
	root.PersistentFlags().String("server", "", "Server base URL, overrides the config")
	root.PersistentFlags().String("log-level", "", "Log level, overrides the config")

	// commands that need the runtime open it lazily and close it on return
	withClient := func(run func(cmd *cobra.Command, args []string, c Client) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, c.Close())
			}()
			return run(cmd, args, c)
		}
	}

	root.AddCommand(
		newVersionCommand(build),
		newRegisterCommand(withClient),
		newLoginCommand(withClient),
		newProjectsCommand(withClient),
		newEnqueueCommand(withClient),
		newSyncCommand(withClient),
		newStatusCommand(withClient),
		newConflictsCommand(withClient),
		newResolveCommand(withClient),
		newRunCommand(withClient),
	)

	return root
}

type runWithClient func(run func(cmd *cobra.Command, args []string, c Client) error) func(*cobra.Command, []string) error

func newVersionCommand(build models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), build)
		},
	}
}

func credentialsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("login", "l", "", "Account login")
	cmd.Flags().StringP("password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
}

func credentials(cmd *cobra.Command) models.User {
	login, _ := cmd.Flags().GetString("login")
	password, _ := cmd.Flags().GetString("password")
	return models.User{Login: login, Password: password}
}

func newRegisterCommand(with runWithClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log this device in",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			if err := c.Register(cmd.Context(), credentials(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registered")
			return nil
		}),
	}
	credentialsFlags(cmd)
	return cmd
}

func newLoginCommand(with runWithClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log this device in",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			userID, err := c.Login(cmd.Context(), credentials(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as user %d\n", userID)
			return nil
		}),
	}
	credentialsFlags(cmd)
	return cmd
}

func newProjectsCommand(with runWithClient) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects this account can sync",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			projects, err := c.Projects(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", p.ProjectID, p.Role, p.Name)
			}
			return nil
		}),
	}
}

func newEnqueueCommand(with runWithClient) *cobra.Command {
	var (
		req      models.EnqueueRequest
		kind     string
		priority string
		payload  string
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue an entity change for the next sync round",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			req.Kind = models.OperationKind(kind)
			req.Priority = models.Priority(priority)
			if payload != "" {
				if !json.Valid([]byte(payload)) {
					return ErrInvalidPayload
				}
				req.Payload = json.RawMessage(payload)
			}

			operationID, err := c.Enqueue(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), operationID)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(models.OperationUpdate), "create, update or delete")
	cmd.Flags().StringVarP(&req.EntityType, "type", "t", "", "Entity type (scene, note, character...)")
	cmd.Flags().StringVar(&req.EntityID, "id", "", "Entity id")
	cmd.Flags().Int64Var(&req.ProjectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&payload, "payload", "", "Entity body as JSON")
	cmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedium), "high, medium or low")
	cmd.Flags().StringSliceVar(&req.Dependencies, "depends-on", nil, "Operation ids that must be pushed first")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSyncCommand(with runWithClient) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push queued operations and pull remote changes",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			result, err := c.Sync(cmd.Context())
			printResult(cmd.OutOrStdout(), result)
			return err
		}),
	}
}

func newStatusCommand(with runWithClient) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local queue state",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			status, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pending: %d\n", status.PendingCount)
			fmt.Fprintf(out, "failed: %d\n", status.FailedCount)
			if status.LastSyncTimestamp != nil {
				fmt.Fprintf(out, "last sync: %s\n", status.LastSyncTimestamp.Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "last sync: never")
			}
			return nil
		}),
	}
}

func newConflictsCommand(with runWithClient) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List conflicts waiting for a decision",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			conflicts, err := c.Conflicts(cmd.Context(), all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(conflicts) == 0 {
				fmt.Fprintln(out, "no conflicts")
				return nil
			}
			for _, cr := range conflicts {
				fmt.Fprintf(out, "%s\t%s/%s\tlocal v%d\tremote v%d\t%s\t%s\n",
					cr.ID, cr.Local.EntityType, cr.Local.EntityID,
					cr.Local.Version, cr.Remote.Version,
					cr.Resolution.Strategy, cr.Resolution.Reason)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include conflicts resolved automatically")

	return cmd
}

func newResolveCommand(with runWithClient) *cobra.Command {
	return &cobra.Command{
		Use:       "resolve <conflict-id> <local|remote>",
		Short:     "Decide a manual conflict",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.SideLocal), string(models.SideRemote)},
		RunE: with(func(cmd *cobra.Command, args []string, c Client) error {
			operationID, err := c.Resolve(cmd.Context(), args[0], models.ConflictSide(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s\n", operationID)
			return nil
		}),
	}
}

func newRunCommand(with runWithClient) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep this device in sync until interrupted",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, c Client) error {
			out := cmd.OutOrStdout()
			return c.Run(cmd.Context(), func(event models.SyncEvent) {
				printEvent(out, event)
			})
		}),
	}
}

func printResult(out io.Writer, result models.SyncResult) {
	if result.Skipped {
		fmt.Fprintln(out, "sync skipped")
		return
	}
	fmt.Fprintf(out, "pushed %d, acknowledged %d, conflicts %d, retried %d, failed %d, pulled %d\n",
		result.Pushed, result.Acknowledged, result.Conflicts, result.Retried, result.PermanentErrors, result.Pulled)
}

func printEvent(out io.Writer, event models.SyncEvent) {
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}
	line := fmt.Sprintf("%s %s", at.Format(time.TimeOnly), event.Type)

	switch {
	case event.Err != "":
		line += ": " + event.Err
	case event.Result != nil:
		line += fmt.Sprintf(": pushed %d, pulled %d", event.Result.Pushed, event.Result.Pulled)
	case event.Change != nil:
		line += fmt.Sprintf(": %s/%s v%d", event.Change.EntityType, event.Change.EntityID, event.Change.Version)
	case event.Conflict != nil:
		line += fmt.Sprintf(": %s/%s %s", event.Conflict.Local.EntityType, event.Conflict.Local.EntityID, event.Conflict.Resolution.Winner)
	case event.OperationID != "":
		line += ": " + event.OperationID
	}
	fmt.Fprintln(out, line)
}

// OpenApp is the default [Factory]: it reads the configuration, applies the
// persistent flag overrides and opens the local stores.
func OpenApp(cmd *cobra.Command) (Client, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	cfg, err := config.GetClientConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if server, _ := flags.GetString("server"); server != "" {
		cfg.Adapter.HTTPAddress = server
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log := logger.NewClientLogger("story-sync-client", cfg.Log.Level, logger.FileConfig{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	return openApp(cmd.Context(), cfg, log)
}

func openApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	services := service.NewClientServices(storages, serverAdapter, cfg, log)
	return NewApp(services, storages, log), nil
}
