package query

import "fmt"

// Print renders a Node back into query syntax, fully parenthesized so that
// re-parsing the output always reproduces an equivalent tree regardless of
// operator precedence.
func Print(n Node) string {
	switch v := n.(type) {
	case TermNode:
		return v.Term
	case PhraseNode:
		return fmt.Sprintf("%q", v.Phrase)
	case AndNode:
		return fmt.Sprintf("(%s AND %s)", Print(v.Left), Print(v.Right))
	case OrNode:
		return fmt.Sprintf("(%s OR %s)", Print(v.Left), Print(v.Right))
	case NotNode:
		return fmt.Sprintf("(NOT %s)", Print(v.Child))
	default:
		return ""
	}
}
