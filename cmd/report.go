package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maelh/robogrid/infra/report"
)

var reportRun string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a markdown report for a stored run directory",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportRun, "run", "outputs/latest", "run directory or 'outputs/latest'")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	dir := reportRun
	if strings.HasSuffix(dir, "latest") {
		resolved, err := resolveLatest(dir)
		if err != nil {
			return err
		}
		dir = resolved
	}
	path, err := report.Make(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", path)
	return nil
}

// resolveLatest follows the pointer file written by simulate, falling back
// to the newest directory under the outputs root.
func resolveLatest(ptr string) (string, error) {
	if data, err := os.ReadFile(ptr); err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	root := filepath.Dir(ptr)
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("no runs found under %s, run: robogrid simulate", root)
	}
	latest := ""
	for _, e := range entries {
		if e.IsDir() && e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no runs found under %s, run: robogrid simulate", root)
	}
	return filepath.Join(root, latest), nil
}
