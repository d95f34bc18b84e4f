// drivecheck is the operator-facing diagnostic CLI for the Drive integration.
// It reuses the server's configuration and credentials to answer the usual
// questions: who am I authenticated as, can I see the folder, can I write to
// it, and does a real upload go through.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"capsule_backend/internal/config"
	"capsule_backend/internal/diag"
	"capsule_backend/internal/storage"

	"github.com/spf13/cobra"
)

var (
	flagFolderID string
	flagPublic   bool
	flagAttempts int
	flagWait     time.Duration
)

func newDoctor(ctx context.Context) (*diag.Doctor, error) {
	cfg, err := config.Load()
	if err != nil && flagFolderID == "" {
		return nil, err
	}

	folderID := flagFolderID
	storageCfg := storage.Config{
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		ServiceAccountFile: "service_account.json",
	}
	if cfg != nil {
		if folderID == "" {
			folderID = cfg.Drive.FolderID
		}
		storageCfg = storage.Config{
			ServiceAccountJSON: cfg.Drive.ServiceAccountJSON,
			ServiceAccountFile: cfg.Drive.ServiceAccountFile,
		}
	}

	return diag.NewDoctor(ctx, storageCfg, folderID, os.Stdout)
}

func run(fn func(context.Context, *diag.Doctor) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		doctor, err := newDoctor(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, doctor)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "drivecheck",
		Short:         "Diagnostics for the time capsule Drive integration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&flagFolderID, "folder", "", "destination folder ID (defaults to FOLDER_ID)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Quick check: does the folder exist and accept uploads",
		RunE: run(func(ctx context.Context, d *diag.Doctor) error {
			return d.Status(ctx)
		}),
	}

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Confirm the service account credentials work",
		RunE: run(func(ctx context.Context, d *diag.Doctor) error {
			fmt.Printf("Service account: %s\n", d.Email())
			return d.Auth(ctx)
		}),
	}

	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Show folder metadata and a sample of its contents",
		RunE: run(func(ctx context.Context, d *diag.Doctor) error {
			return d.Folder(ctx)
		}),
	}

	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a disposable test file into the folder",
		RunE: run(func(ctx context.Context, d *diag.Doctor) error {
			return d.Upload(ctx, flagPublic)
		}),
	}
	uploadCmd.Flags().BoolVar(&flagPublic, "public", false, "make the test file publicly viewable")

	permissionsCmd := &cobra.Command{
		Use:   "permissions",
		Short: "Poll until the folder becomes writable by the service account",
		RunE: run(func(ctx context.Context, d *diag.Doctor) error {
			return d.WaitWritable(ctx, flagAttempts, flagWait)
		}),
	}
	permissionsCmd.Flags().IntVar(&flagAttempts, "attempts", 5, "number of checks before giving up")
	permissionsCmd.Flags().DurationVar(&flagWait, "wait", 30*time.Second, "delay between checks")

	rootCmd.AddCommand(statusCmd, authCmd, folderCmd, uploadCmd, permissionsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
