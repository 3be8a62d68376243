package moderation

// ContentType identifies the kind of user content being moderated.
type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeReview  ContentType = "review"
	ContentTypeComment ContentType = "comment"
)

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypePost, ContentTypeReview, ContentTypeComment:
		return true
	}
	return false
}

// Flag is a categorical policy violation detected in content.
type Flag string

const (
	FlagInappropriateContent Flag = "inappropriate_content"
	FlagHarassment           Flag = "harassment"
	FlagHateSpeech           Flag = "hate_speech"
	FlagSpam                 Flag = "spam"
	FlagPersonalInformation  Flag = "personal_information"
)

// Status is the lifecycle state of a moderation verdict.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFlagged  Status = "flagged"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusFlagged, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the review workflow.
// Terminal results are never queue-resident.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Severity ranks how serious a flagged item is.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

func (s Severity) Rank() int {
	return severityRank[s]
}

// Priority is the queue-ordering key derived from severity.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

func (p Priority) Rank() int {
	return priorityRank[p]
}

func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// PriorityForSeverity maps a detector severity to its review priority.
// Clean and low severities share the lowest priority band.
func PriorityForSeverity(s Severity) Priority {
	switch s {
	case SeverityCritical:
		return PriorityCritical
	case SeverityHigh:
		return PriorityHigh
	case SeverityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ReviewAction is a decision taken by a human moderator on a queue item.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
	ReviewActionFlag    ReviewAction = "flag"
)

func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewActionApprove, ReviewActionReject, ReviewActionFlag:
		return true
	}
	return false
}
