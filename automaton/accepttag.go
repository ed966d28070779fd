package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/limecc/internal/util"
)

// AcceptTag marks an accepting state with the token it accepts, the
// token's priority (literal tokens are 1, regex tokens 0, per spec.md
// §3), and the set of "origins" — human-readable names of every token
// definition that contributed to this tag, for conflict diagnostics.
type AcceptTag struct {
	TokenID  int
	Priority int
	Origins  util.StringSet
}

// NewAcceptTag builds a tag for a single token definition.
func NewAcceptTag(tokenID, priority int, origin string) AcceptTag {
	return AcceptTag{TokenID: tokenID, Priority: priority, Origins: util.StringSetOf([]string{origin})}
}

// LexerConflictError reports two same-priority tokens both accepting in
// the same merged DFA state, which the combine rule cannot resolve.
type LexerConflictError struct {
	TokenA, TokenB   int
	OriginA, OriginB string
}

func (e *LexerConflictError) Error() string {
	return fmt.Sprintf("lexer conflict: tokens %d (%s) and %d (%s) accept the same string with equal priority",
		e.TokenA, e.OriginA, e.TokenB, e.OriginB)
}

// CombineAcceptTags implements spec.md §3's AcceptTag combine rule for
// two accepting states being merged into one (during subset
// construction or minimization): same token ID unions origins and takes
// the max priority; different token ID with equal priority is a fatal
// lexer conflict; otherwise the higher-priority tag wins outright.
func CombineAcceptTags(a, b AcceptTag) (AcceptTag, error) {
	if a.TokenID == b.TokenID {
		origins := util.NewStringSet()
		origins.AddAll(a.Origins)
		origins.AddAll(b.Origins)
		pri := a.Priority
		if b.Priority > pri {
			pri = b.Priority
		}
		return AcceptTag{TokenID: a.TokenID, Priority: pri, Origins: origins}, nil
	}

	if a.Priority == b.Priority {
		return AcceptTag{}, &LexerConflictError{
			TokenA: a.TokenID, TokenB: b.TokenID,
			OriginA: firstOrigin(a.Origins), OriginB: firstOrigin(b.Origins),
		}
	}

	if a.Priority > b.Priority {
		return a, nil
	}
	return b, nil
}

func firstOrigin(s util.StringSet) string {
	els := s.Elements()
	sort.Strings(els)
	if len(els) == 0 {
		return ""
	}
	return els[0]
}
