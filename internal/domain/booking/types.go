package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions is the full lifecycle graph. rejected and cancelled
// are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
