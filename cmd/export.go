package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3music/opmchat/internal/chat"
	"github.com/a3music/opmchat/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a conversation to a file",
	Long: `Exports a conversation's full message log to markdown, JSON, or YAML.
Conversation ids are shown by "opmchat list".`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: md, json, or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to <session-id>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	exporter, err := export.NewExporter(exportFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, closer, err := newService(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	history, err := svc.History(ctx, sessionID)
	if err != nil {
		return err
	}

	conv := export.Conversation{
		ID:       sessionID,
		Title:    titleFor(ctx, svc, sessionID),
		Messages: history,
	}

	outPath := exportOutput
	if outPath == "" {
		outPath = sessionID + "." + exporter.Extension()
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := exporter.Export(&conv, f); err != nil {
		return fmt.Errorf("error writing export: %w", err)
	}

	fmt.Printf("Exported %d message(s) to %s\n", len(history), outPath)
	return nil
}

// titleFor looks up the conversation title. A missing title is fine; the
// exporters fall back to the id.
func titleFor(ctx context.Context, svc chat.Service, sessionID string) string {
	sessions, err := svc.Sessions(ctx)
	if err != nil {
		return ""
	}
	for _, s := range sessions {
		if s.ID == sessionID {
			return s.Title
		}
	}
	return ""
}
