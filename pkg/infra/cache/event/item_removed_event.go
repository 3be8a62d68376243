package event

type ItemRemovedEvent struct {
	ItemID     string `json:"item_id"`
	QueueDepth int    `json:"queue_depth"`
}

func (e ItemRemovedEvent) Type() string {
	return ItemRemovedEventType
}
