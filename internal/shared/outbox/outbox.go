package outbox

// Outbox row statuses persisted inside the same DB transaction as state
// changes. The worker relay reads pending rows and publishes to the bus.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)
