package export

import (
	"fmt"
	"io"

	"github.com/a3music/opmchat/internal/chat"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export writes a conversation to Markdown format
func (e *MarkdownExporter) Export(conv *Conversation, w io.Writer) error {
	title := conv.Title
	if title == "" {
		title = conv.ID
	}
	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", conv.ID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(conv.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range conv.Messages {
		actor := "Guide"
		if msg.Sender == chat.SenderUser {
			actor = "You"
		}
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", actor, msg.Content)

		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
