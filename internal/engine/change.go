package engine

// ChangeKind identifies what a mutation did
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeCreated
	ChangeDeleted
	ChangeImportance
	ChangeCompleted
	ChangeFilter
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	case ChangeImportance:
		return "importance"
	case ChangeCompleted:
		return "completed"
	case ChangeFilter:
		return "filter"
	default:
		return "none"
	}
}

// Change is the signal a mutation emits. A zero Change means nothing happened.
type Change struct {
	Kind    ChangeKind
	TimerID string
}
