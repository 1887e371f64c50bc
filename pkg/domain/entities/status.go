package entities

// PointStatus represents the completion status of a decision point, subgroup,
// or group. Values are ordered most-restrictive-first: rollup picks the first
// status any child carries.
type PointStatus int

const (
	StatusConflicted PointStatus = iota
	StatusRequired
	StatusPartiallyCompleted
	StatusCompleted
	StatusViewed
	StatusUnviewed
)

// String method for PointStatus enum
func (s PointStatus) String() string {
	switch s {
	case StatusConflicted:
		return "Conflicted"
	case StatusRequired:
		return "Required"
	case StatusPartiallyCompleted:
		return "PartiallyCompleted"
	case StatusCompleted:
		return "Completed"
	case StatusViewed:
		return "Viewed"
	case StatusUnviewed:
		return "Unviewed"
	default:
		return "Unknown"
	}
}
