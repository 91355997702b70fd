package automaton

// MinimizeBrzozowski
// Minimizes the given automaton by determinizing its reverse twice (Brzozowski's algorithm). The input
// must be valid (see Validate); unreachable states are removed first. Each determinization may need up to
// 2^n states, so workLimit bounds the states either pass may create (DefaultDeterminizeWorkLimit when
// workLimit <= 0). Exceeding it returns an error matching ErrResourceExhausted.
//
// The result is identical to Minimize's.
func MinimizeBrzozowski(a *Automaton, workLimit int) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	trimmed := RemoveUnreachable(a)
	reversed, err := reverseDeterminize(trimmed, workLimit)
	if err != nil {
		return nil, err
	}
	result, err := reverseDeterminize(reversed, workLimit)
	if err != nil {
		return nil, err
	}
	return RemoveUnreachable(result), nil
}
