package core

// WaitBounded spins on done for at most budget iterations and reports
// whether completion was observed. Exceeding the budget always aborts
// the wait; it never loops indefinitely. The budget bounds worst-case
// tick-context latency, so callers must not retry on failure.
func WaitBounded(budget int, done func() bool) bool {
	for i := 0; i < budget; i++ {
		if done() {
			return true
		}
	}
	return false
}
