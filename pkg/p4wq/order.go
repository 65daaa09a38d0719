package p4wq

// treeLess orders the pending tree so that its maximum is the item to run next:
// highest priority, then earliest deadline, then lowest sequence number.
// Sequence numbers are unique, so two distinct items never compare equal.
func treeLess(a, b *Work) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Deadline != b.Deadline {
		return a.Deadline > b.Deadline
	}
	return a.seq > b.seq
}

// beatsOrTies reports whether a is at least as urgent as b. Ties count as
// already served so equally urgent submissions never wake another worker.
func beatsOrTies(a, b *Work) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Deadline <= b.Deadline
}
