package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/4Lienau/directory-sync/internal/store"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and modify sync policies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sync policies",
	RunE:  runPolicyList,
}

var policySetCmd = &cobra.Command{
	Use:   "set <sync-type>",
	Short: "Create or update a sync policy",
	Long: `Create or update the policy for a sync type. Scheduling state
(last run, next due) is preserved when the policy already exists.

Examples:
  dirsync policy set azure_ad_sync --config config.yaml --enabled --frequency-hours 12
  dirsync policy set azure_ad_sync --config config.yaml --enabled=false`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicySet,
}

func init() {
	policyCmd.PersistentFlags().String("config", "", "Path to configuration file (YAML format, required)")
	if err := policyCmd.MarkPersistentFlagRequired("config"); err != nil {
		panic(err)
	}

	policySetCmd.Flags().Bool("enabled", false, "Enable or disable the policy")
	policySetCmd.Flags().Int("frequency-hours", 24, "Hours between scheduled runs")

	policyCmd.AddCommand(policyListCmd)
	policyCmd.AddCommand(policySetCmd)
}

func runPolicyList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	_, st, cleanup, err := setupStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	policies, err := st.ListPolicies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sync policies: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "SYNC TYPE\tENABLED\tFREQUENCY\tLAST RUN\tNEXT DUE")
	for _, p := range policies {
		lastRun := "-"
		if p.LastRunAt != nil {
			lastRun = p.LastRunAt.Format("2006-01-02 15:04:05")
		}
		nextDue := "-"
		if p.NextDueAt != nil {
			nextDue = p.NextDueAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%t\t%dh\t%s\t%s\n",
			p.SyncType, p.Enabled, p.FrequencyHours, lastRun, nextDue)
	}
	return w.Flush()
}

func runPolicySet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	enabled, err := cmd.Flags().GetBool("enabled")
	if err != nil {
		return fmt.Errorf("failed to get enabled flag: %w", err)
	}

	frequencyHours, err := cmd.Flags().GetInt("frequency-hours")
	if err != nil {
		return fmt.Errorf("failed to get frequency-hours flag: %w", err)
	}

	_, st, cleanup, err := setupStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	policy := store.SyncPolicy{
		SyncType:       args[0],
		Enabled:        enabled,
		FrequencyHours: frequencyHours,
	}
	if err := st.UpsertPolicy(ctx, policy); err != nil {
		return fmt.Errorf("failed to update sync policy: %w", err)
	}

	fmt.Printf("Policy %s updated (enabled=%t, frequency=%dh)\n",
		policy.SyncType, policy.Enabled, policy.FrequencyHours)
	return nil
}
