package event

type ItemReviewedEvent struct {
	ItemID      string `json:"item_id"`
	ContentID   string `json:"content_id"`
	Action      string `json:"action"`
	ModeratorID string `json:"moderator_id"`
	Status      string `json:"status"`
	QueueDepth  int    `json:"queue_depth"`
}

func (e ItemReviewedEvent) Type() string {
	return ItemReviewedEventType
}
