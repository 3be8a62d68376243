package request

import (
	"fmt"

	"github.com/veilmatch/moderation/pkg/domain/moderation"
)

type SubmitContentRequest struct {
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	AuthorID    string `json:"author_id"`
	Text        string `json:"text"`
}

func (r *SubmitContentRequest) Validate() error {
	if r.ContentID == "" {
		return fmt.Errorf("content_id is required")
	}
	if r.AuthorID == "" {
		return fmt.Errorf("author_id is required")
	}
	if !moderation.ContentType(r.ContentType).IsValid() {
		return fmt.Errorf("content_type must be 'post', 'review' or 'comment'")
	}
	return nil
}
