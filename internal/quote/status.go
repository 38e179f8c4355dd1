package quote

// Status is a quote's position in the order lifecycle.
type Status string

const (
	StatusPendingFiles    Status = "pending_files"
	StatusBuilding        Status = "building"
	StatusPendingApproval Status = "pending_approval"
	StatusPendingPayment  Status = "pending_payment"
	StatusConfirmed       Status = "confirmed"
	StatusCancelled       Status = "cancelled"
)

// lifecycle is the forward-only order of non-cancelled statuses.
var lifecycle = []Status{
	StatusPendingFiles,
	StatusBuilding,
	StatusPendingApproval,
	StatusPendingPayment,
	StatusConfirmed,
}

func (s Status) rank() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusCancelled || s.rank() >= 0
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanTransition reports whether a quote may move from s to next. Moves go
// forward one step at a time; cancellation is allowed from any non-terminal
// status.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return next.rank() == s.rank()+1
}
