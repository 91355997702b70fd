package automaton

// Run Returns true if the automaton accepts the given sequence of labels. A missing transition rejects.
func Run(a *Automaton, labels []int) bool {
	state := a.start
	for _, label := range labels {
		nextState := a.Step(state, label)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}

// RunString Same as Run, reading the code points of s as labels.
func RunString(a *Automaton, s string) bool {
	labels := make([]int, 0, len(s))
	for _, r := range s {
		labels = append(labels, int(r))
	}
	return Run(a, labels)
}
