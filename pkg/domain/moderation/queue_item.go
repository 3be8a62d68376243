package moderation

import (
	"github.com/google/uuid"
)

// ContentPreviewLength caps the amount of original text carried on a queue
// item; reviewers fetch the full content through the content service.
const ContentPreviewLength = 280

// QueueItem wraps a verdict while it awaits human review. The queue entry
// id is distinct from the content id: duplicate submissions of the same
// content produce distinct entries.
type QueueItem struct {
	ID          uuid.UUID   `json:"id"`
	ContentID   string      `json:"content_id"`
	AuthorID    string      `json:"author_id"`
	ContentType ContentType `json:"content_type"`
	Content     string      `json:"content"`
	Result      Result      `json:"moderation_result"`
	Priority    Priority    `json:"priority"`
}

// NewQueueItem builds a queue entry for a non-approved verdict. The
// priority is derived deterministically from the verdict severity.
func NewQueueItem(contentID, authorID string, contentType ContentType, content string, result Result) QueueItem {
	return QueueItem{
		ID:          uuid.New(),
		ContentID:   contentID,
		AuthorID:    authorID,
		ContentType: contentType,
		Content:     truncatePreview(content, ContentPreviewLength),
		Result:      result,
		Priority:    PriorityForSeverity(result.Severity),
	}
}

func truncatePreview(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
