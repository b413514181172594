package v1

// Canonical event types carried in Envelope.EventType. Producers and
// consumers reference these names; never repurpose a published value.
const (
	DeliberationSubmitted     = "deliberation.submitted"
	DeliberationVotingStarted = "deliberation.voting_started"
	DeliberationVotingClosed  = "deliberation.voting_closed"
	DeliberationVotingOverdue = "deliberation.voting_overdue"
	DeliberationResolved      = "deliberation.resolved"
	DeliberationReturned      = "deliberation.returned"
	DeliberationWithdrawn     = "deliberation.withdrawn"
	VoteCast                  = "vote.cast"
	MinutesGenerated          = "minutes.generated"
	MinutesPublished          = "minutes.published"
	ExecutionTaskCreated      = "execution_task.created"
	ExecutionTaskUpdated      = "execution_task.updated"

	CommitteeUpdated  = "committee.updated"
	CommitteeArchived = "committee.archived"
)
