package service

// Collaborator labels for failure counting.
const (
	CollaboratorMedia     = "media"
	CollaboratorScoring   = "scoring"
	CollaboratorPublisher = "publisher"
)

// MetricsRecorder receives business-level counters from the use cases.
type MetricsRecorder interface {
	// IncrModerationDecision counts one applied transition, e.g. ("verification", "approve").
	IncrModerationDecision(workflow, action string)
	IncrCollaboratorFailure(collaborator string)
	// IncrMediaLeak counts an uploaded file that could not be released.
	IncrMediaLeak()
}
