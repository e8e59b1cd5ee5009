package ledger

// Choice is one (worker, action) pair the decision source may pick.
type Choice struct {
	Worker WorkerID `json:"worker"`
	Action ActionID `json:"action"`
}

// Eligible lists every action of every worker with energy left, in roster
// order. Booking flags do not gate anything: a booked flight can be booked
// again while the flight consultant has energy.
func Eligible(s *TripState) []Choice {
	var out []Choice
	for _, w := range roster {
		if !workerActive(s, w.ID) {
			continue
		}
		for _, a := range w.Actions {
			out = append(out, Choice{Worker: w.ID, Action: a})
		}
	}
	return out
}

// IsEligible reports whether worker may perform action right now.
func IsEligible(s *TripState, worker WorkerID, action ActionID) bool {
	return Declares(worker, action) && workerActive(s, worker)
}

// ActiveWorkers lists the workers that still have energy, in roster order.
func ActiveWorkers(s *TripState) []WorkerID {
	var out []WorkerID
	for _, w := range roster {
		if workerActive(s, w.ID) {
			out = append(out, w.ID)
		}
	}
	return out
}

func workerActive(s *TripState, id WorkerID) bool {
	w, ok := s.Workers[id]
	return ok && w.Energy > 0
}
