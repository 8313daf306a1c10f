package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/events/kafka"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/progress"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/config"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/logging"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/storage"
)

// storeOpener は設定ファイルのパスから Store を開きます。返却される関数で資源を解放します。
type storeOpener func(ctx context.Context, cfgPath string, verbose bool) (onboarding.UseCase, func(), error)

func defaultOpener(ctx context.Context, cfgPath string, verbose bool) (onboarding.UseCase, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Log
	if !verbose {
		logCfg.Level = "warn"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []onboarding.Option{
		onboarding.WithLogger(logger),
		onboarding.WithAdminEmail(cfg.Admin.Email),
		onboarding.WithLazySeeding(cfg.Storage.LazySeed),
	}
	publisher := notificationPublisher(cfg, logger)
	if publisher != nil {
		opts = append(opts, onboarding.WithPublisher(publisher))
	}

	store := onboarding.NewStore(backend.Storage, nil, backend.Tx, opts...)
	return store, func() {
		if publisher != nil {
			publisher.Close()
		}
		backend.Close()
		_ = logger.Sync()
	}, nil
}

// notificationPublisher はイベント配信が有効な場合のみ Kafka Publisher を返します。
func notificationPublisher(cfg *config.Config, logger *zap.Logger) *kafka.Publisher {
	if !cfg.Events.Enabled() {
		return nil
	}
	return kafka.NewPublisher(logger, cfg.Events.KafkaBrokers, cfg.Events.NotificationTopic)
}

type cli struct {
	open    storeOpener
	cfgPath string
	verbose bool
}

func newRootCmd(open storeOpener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "onboardctl",
		Short:         "Inspect and administer onboarding records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", defaultConfigPath(), "path to config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		c.seedCmd(),
		c.meCmd(),
		c.notificationsCmd(),
		c.shiftsCmd(),
		c.progressCmd(),
		c.approveCmd(),
		c.rejectCmd(),
		c.completeStepCmd(),
		c.resetStepCmd(),
		c.auditCmd(),
	)
	return root
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}

// withStore は Store を開いて fn を実行し、結果を JSON で出力します。
func (c *cli) withStore(cmd *cobra.Command, fn func(ctx context.Context, store onboarding.UseCase) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeFn, err := c.open(ctx, c.cfgPath, c.verbose)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	out, err := fn(ctx, store)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) seedCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed setup, notifications and shifts for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				if err := store.EnsureSeeded(ctx, email); err != nil {
					return nil, err
				}
				return map[string]string{"seeded": email}, nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.Me(ctx)
			})
		},
	}
}

func (c *cli) notificationsCmd() *cobra.Command {
	var (
		email   string
		unread  bool
		orderBy string
	)
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				where := onboarding.NotificationFilter{UserEmail: email}
				if unread {
					isRead := false
					where.IsRead = &isRead
				}
				return store.FilterNotifications(ctx, where, orderBy)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	cmd.Flags().BoolVar(&unread, "unread", false, "only unread notifications")
	cmd.Flags().StringVar(&orderBy, "order", "-created_date", "sort order")
	return cmd
}

func (c *cli) shiftsCmd() *cobra.Command {
	var (
		email   string
		orderBy string
	)
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "List shifts for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.FilterShifts(ctx, onboarding.ShiftFilter{UserEmail: email}, orderBy)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	cmd.Flags().StringVar(&orderBy, "order", "date", "sort order (date or -date)")
	return cmd
}

func (c *cli) progressCmd() *cobra.Command {
	var tasksFile string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Derive the onboarding stepper from a task list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := progress.DefaultTasks()
			if tasksFile != "" {
				b, err := os.ReadFile(tasksFile)
				if err != nil {
					return fmt.Errorf("read tasks: %w", err)
				}
				tasks = nil
				if err := json.Unmarshal(b, &tasks); err != nil {
					return fmt.Errorf("parse tasks: %w", err)
				}
			}
			return printJSON(cmd.OutOrStdout(), progress.Derive(progress.CanonicalSteps, tasks))
		},
	}
	cmd.Flags().StringVar(&tasksFile, "tasks", "", "JSON file with the required task list (defaults to the initial tasks)")
	return cmd
}

func (c *cli) approveCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "approve-ppe",
		Short: "Approve a safety footwear submission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.ApprovePPE(ctx, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) rejectCmd() *cobra.Command {
	var email, reason string
	cmd := &cobra.Command{
		Use:   "reject-ppe",
		Short: "Reject a safety footwear submission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.RejectPPE(ctx, email, reason)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	cmd.Flags().StringVar(&reason, "reason", "", "reason shown to the employee")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func (c *cli) completeStepCmd() *cobra.Command {
	var (
		email  string
		screen int
	)
	cmd := &cobra.Command{
		Use:   "complete-step",
		Short: "Mark an onboarding screen as completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.CompleteStep(ctx, email, screen)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	cmd.Flags().IntVar(&screen, "screen", 0, "screen number (2-7)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("screen")
	return cmd
}

func (c *cli) resetStepCmd() *cobra.Command {
	var (
		email  string
		screen int
	)
	cmd := &cobra.Command{
		Use:   "reset-step",
		Short: "Mark an onboarding screen as not completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.ResetStep(ctx, email, screen)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email scope")
	cmd.Flags().IntVar(&screen, "screen", 0, "screen number (2-7)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("screen")
	return cmd
}

func (c *cli) auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the admin audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd, func(ctx context.Context, store onboarding.UseCase) (any, error) {
				return store.ListAuditLog(ctx)
			})
		},
	}
}
