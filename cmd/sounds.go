package cmd

import (
	"fmt"
	"io"

	"github.com/zjrosen/soundfetch/internal/catalog"
	"github.com/zjrosen/soundfetch/internal/library"
	"github.com/zjrosen/soundfetch/internal/source"
	"github.com/zjrosen/soundfetch/internal/ui/styles"

	"github.com/spf13/cobra"
)

func newSoundsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "List the known sounds and their sources",
		Long:  `Display every sound in the catalog with its file name, whether a file ID is configured, how many candidate URLs it resolves to and whether it is already present in the sounds directory.`,
		Args:  cobra.NoArgs,
		RunE:  a.runSounds,
	}
}

func (a *app) runSounds(cmd *cobra.Command, args []string) error {
	cat, err := a.cfg.Catalog()
	if err != nil {
		return err
	}

	present, err := library.Existing(a.cfg.SoundsDir, cat.FileNames())
	if err != nil {
		return fmt.Errorf("scanning sounds directory: %w", err)
	}
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}

	printSounds(cmd.OutOrStdout(), cat, a.resolver(), have, a.cfg.SoundsDir)
	return nil
}

func printSounds(w io.Writer, cat *catalog.Catalog, r source.Resolver, have map[string]bool, dir string) {
	sounds := cat.Sounds()
	nameLen, fileLen := maxNameLen(sounds)

	_, _ = fmt.Fprintf(w, "Sounds (%s):\n", dir)
	for _, s := range sounds {
		drive := "-"
		if s.HasDriveID() {
			drive = s.DriveID
		}
		mark := ""
		if have[s.FileName] {
			mark = styles.MarkerPresent
		}
		_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %d source(s)  drive:%s  %s\n",
			nameLen, s.Name, fileLen, s.FileName, len(r.Candidates(s)), drive, mark)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Configure sources in drive.file_ids, supabase.url or fallbacks")
}

// maxNameLen returns the longest sound name and file name in the slice.
func maxNameLen(sounds []catalog.Sound) (int, int) {
	nameLen, fileLen := 0, 0
	for _, s := range sounds {
		nameLen = max(nameLen, len(s.Name))
		fileLen = max(fileLen, len(s.FileName))
	}
	return nameLen, fileLen
}
