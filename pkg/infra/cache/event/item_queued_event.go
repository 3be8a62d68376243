package event

type ItemQueuedEvent struct {
	ItemID      string `json:"item_id"`
	ContentID   string `json:"content_id"`
	ContentType string `json:"content_type"`
	Priority    string `json:"priority"`
	QueueDepth  int    `json:"queue_depth"`
}

func (e ItemQueuedEvent) Type() string {
	return ItemQueuedEventType
}
