package token

import "sync"

// operator is a dialect-registered token.
type operator struct {
	spelling   string
	comparison bool
}

var (
	registerMu sync.RWMutex
	lastID     = maxBuiltin
	operators  = make(map[TokenType]operator)
	bySpelling = make(map[string]TokenType)
)

// Register registers a dialect-specific operator such as ILIKE or REGEXP.
// Registering the same spelling twice returns the same token, so dialects
// that share an operator share its token.
func Register(spelling string) TokenType {
	return register(spelling, false)
}

// RegisterComparison registers an operator that binds like a comparison.
func RegisterComparison(spelling string) TokenType {
	return register(spelling, true)
}

func register(spelling string, comparison bool) TokenType {
	registerMu.Lock()
	defer registerMu.Unlock()

	t, ok := bySpelling[spelling]
	if !ok {
		lastID++
		t = lastID
		bySpelling[spelling] = t
	}
	op := operators[t]
	op.spelling = spelling
	op.comparison = op.comparison || comparison
	operators[t] = op
	return t
}

func lookupOperator(t TokenType) (operator, bool) {
	registerMu.RLock()
	defer registerMu.RUnlock()
	op, ok := operators[t]
	return op, ok
}

// IsDynamic reports whether t was registered at runtime.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}
