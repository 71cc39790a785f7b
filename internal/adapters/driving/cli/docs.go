package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage the document collection",
	Long:  `List, inspect, or remove documents in the backend collection.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsRmCmd = &cobra.Command{
	Use:   "rm [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRm,
}

var docsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document in the collection",
	Args:  cobra.NoArgs,
	RunE:  runDocsClear,
}

// clearYes skips the confirmation prompt for docs clear.
var clearYes bool

func init() {
	docsClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsRmCmd)
	docsCmd.AddCommand(docsClearCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if collection == nil {
		return errors.New("document collection not configured")
	}

	if err := collection.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	docs := collection.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents in the collection.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File:   %s\n", docs[i].Metadata.FileName)
		if docs[i].Metadata.ChunkCount > 0 {
			cmd.Printf("    Chunks: %d\n", docs[i].Metadata.ChunkCount)
		}
		if docs[i].Metadata.Status != "" {
			cmd.Printf("    Status: %s\n", docs[i].Metadata.Status)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if collection == nil {
		return errors.New("document collection not configured")
	}

	doc, err := collection.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:     %s\n", doc.Metadata.FileName)
	if doc.Metadata.FileSize > 0 {
		cmd.Printf("  Size:     %d bytes\n", doc.Metadata.FileSize)
	}
	if doc.Metadata.UploadDate != "" {
		cmd.Printf("  Uploaded: %s\n", doc.Metadata.UploadDate)
	}
	cmd.Printf("  Chunks:   %d\n", doc.Metadata.ChunkCount)
	if doc.Metadata.Status != "" {
		cmd.Printf("  Status:   %s\n", doc.Metadata.Status)
	}

	for i := range doc.Chunks {
		cmd.Printf("\n  Chunk %d (%s)\n", i+1, doc.Chunks[i].ID)
		text := doc.Chunks[i].Summary
		if text == "" {
			text = doc.Chunks[i].Text
		}
		if text != "" {
			cmd.Printf("    %s\n", snippet(text, displayWidth()-4))
		}
	}

	return nil
}

func runDocsRm(cmd *cobra.Command, args []string) error {
	if collection == nil {
		return errors.New("document collection not configured")
	}

	if err := collection.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocsClear(cmd *cobra.Command, _ []string) error {
	if collection == nil {
		return errors.New("document collection not configured")
	}

	if !clearYes {
		cmd.Print("Delete every document in the collection? [y/N] ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := collection.ClearAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	cmd.Println("Collection cleared.")
	return nil
}
