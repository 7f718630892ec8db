package resource

// Outcome is the result of a pool mutation.
type Outcome int

// Pool mutation outcomes.
const (
	Unchanged Outcome = iota
	Created
	Deleted
	AlreadyAbsent
	RejectedByCascadePolicy
)

// OK reports whether the mutation was accepted.
func (o Outcome) OK() bool { return o != RejectedByCascadePolicy }

func (o Outcome) String() string {
	switch o {
	case Created:
		return "Created"
	case Deleted:
		return "Deleted"
	case AlreadyAbsent:
		return "AlreadyAbsent"
	case RejectedByCascadePolicy:
		return "RejectedByCascadePolicy"
	default:
		return "Unchanged"
	}
}
