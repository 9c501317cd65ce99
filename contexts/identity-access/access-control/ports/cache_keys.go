package ports

import "strings"

// Decision key layout shared by cache adapters and the query layer. Invalidate
// implementations drop every key derived from the principal.
func AdminDecisionKey(principal string) string {
	return "access:decision:admin:" + strings.TrimSpace(principal)
}

func AuthorizedDecisionKey(principal string) string {
	return "access:decision:authorized:" + strings.TrimSpace(principal)
}

func DecisionKeys(principal string) []string {
	return []string{
		AdminDecisionKey(principal),
		AuthorizedDecisionKey(principal),
	}
}
