package event

const (
	ItemQueuedEventType   = "moderation.item_queued"
	ItemReviewedEventType = "moderation.item_reviewed"
	ItemRemovedEventType  = "moderation.item_removed"
)

type Event interface {
	Type() string
}
