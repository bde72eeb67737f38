package subscription

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusCancelled},
	StatusActive:  {StatusExpired, StatusCancelled},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Source records how a subscription was sold.
type Source string

const (
	SourceDirect   Source = "direct"
	SourceReseller Source = "reseller"
)

func (s Source) IsValid() bool {
	return s == SourceDirect || s == SourceReseller
}
