package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tariquesani/dayone-archive/internal/check"
	"github.com/tariquesani/dayone-archive/internal/config"
	"github.com/tariquesani/dayone-archive/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the photo index against the entry pages",
	Long: `Cross-references entries/photo-index.json with the photo anchors on the
generated entry pages. The lightbox degrades to plain links wherever the two
disagree; check reports those spots instead of letting readers find them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger := newLogger()
		rep, err := check.Run(cfg.ArchiveDir, progress.NewReporter("Checking archive"))
		if err != nil {
			return err
		}

		logger.Info("scan complete",
			"pages", rep.PagesScanned, "photos", rep.IndexedPhotos)

		for _, p := range rep.BadRecords {
			logger.Error("bad index record", "photo", p.PhotoID, "detail", p.Detail)
		}
		for _, p := range rep.StaleIndex {
			logger.Error("stale index", "photo", p.PhotoID, "page", p.Page, "detail", p.Detail)
		}
		for _, p := range rep.Unindexed {
			logger.Warn("unindexed photo", "photo", p.PhotoID, "page", p.Page)
		}

		if !rep.Clean() {
			return fmt.Errorf("archive has %d stale, %d unindexed, %d bad records",
				len(rep.StaleIndex), len(rep.Unindexed), len(rep.BadRecords))
		}
		fmt.Println("Photo index and entry pages agree.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
