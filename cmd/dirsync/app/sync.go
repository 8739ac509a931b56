package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/4Lienau/directory-sync/internal/directory"
	"github.com/4Lienau/directory-sync/internal/reconciler"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation and exit",
	Long: `Run a single manual reconciliation against the configured directory
provider and print the result as JSON. The run is journaled like any
scheduled run. Exits non-zero when the run fails.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	if err := syncCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, st, cleanup, err := setupStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := directory.NewClient(&cfg.Directory)
	if err != nil {
		return fmt.Errorf("failed to create directory client: %w", err)
	}

	release, acquired, err := st.TryAdvisoryLock(ctx, reconciler.SyncTypeAzureAD)
	if err != nil {
		return fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("sync already in progress")
	}
	defer release()

	rec := reconciler.New(reconciler.SyncTypeAzureAD, client, st, st)

	result, runErr := rec.Run(ctx, reconciler.TriggerManual)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))

	return runErr
}
