package request

import (
	"fmt"

	"github.com/veilmatch/moderation/pkg/domain/moderation"
)

type ReviewQueueItemRequest struct {
	Action      string `json:"action"`
	ModeratorID string `json:"moderator_id"`
	Reason      string `json:"reason,omitempty"`
}

func (r *ReviewQueueItemRequest) Validate() error {
	if !moderation.ReviewAction(r.Action).IsValid() {
		return fmt.Errorf("action must be 'approve', 'reject' or 'flag'")
	}
	if r.ModeratorID == "" {
		return fmt.Errorf("moderator_id is required")
	}
	return nil
}
