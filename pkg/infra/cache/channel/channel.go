package channel

type Channel string

// QueueEventsChannel carries queue-change events to dashboard consumers.
const QueueEventsChannel Channel = "moderation:queue:events"
