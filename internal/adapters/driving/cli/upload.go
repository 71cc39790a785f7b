package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents to the backend",
	Long: `Uploads one or more files for ingestion. The backend chunks and
embeds each document before it becomes queryable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploads == nil {
		return errors.New("upload tracker not configured")
	}

	uploads.SetObserver(func(st domain.UploadState) {
		if st.Status == domain.UploadUploading {
			cmd.Printf("\r  %s: %3.0f%%", st.FileName, st.Progress)
		}
	})
	defer uploads.SetObserver(nil)

	for _, path := range args {
		if err := uploadOne(cmd, path); err != nil {
			return err
		}
	}
	return nil
}

func uploadOne(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ack, err := uploads.Start(cmd.Context(), filepath.Base(path), f, info.Size())
	if err != nil {
		cmd.Println()
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}

	cmd.Printf("\r  %s: done   \n", filepath.Base(path))
	if ack.DocID != "" {
		cmd.Printf("    Document ID: %s\n", ack.DocID)
	}
	return nil
}
