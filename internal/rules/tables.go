package rules

import (
	"strings"

	pstrings "github.com/MatteoMarello/bidpilot-mvp/pkg/platform/strings"
)

// certEquivalences maps a normalized required certification token to the
// normalized tokens accepted as equivalent. The only entries are equivalences
// with an explicit statutory basis; anything else stays an ambiguous match
// requiring human confirmation.
var certEquivalences = map[string][]string{
	// ISO 45001 superseded OHSAS 18001 as the safety-management standard.
	pstrings.NormalizeToken("OHSAS 18001"): {pstrings.NormalizeToken("ISO 45001")},
	// SA 8000 social accountability is accepted where the older SA8000:2008
	// wording appears.
	pstrings.NormalizeToken("SA8000:2008"): {pstrings.NormalizeToken("SA 8000")},
}

// certMatch classifies how an owned certification satisfies a requirement.
type certMatch int

const (
	certNoMatch certMatch = iota
	certExact
	certEquivalent
	certPartial
)

// matchCertification compares a required certification name with an owned
// one using normalized tokens, recognized equivalences, then substring
// overlap (a partial match, capped at ambiguous confidence by callers).
func matchCertification(required, owned string) certMatch {
	req := pstrings.NormalizeToken(required)
	own := pstrings.NormalizeToken(owned)
	if req == "" || own == "" {
		return certNoMatch
	}
	if req == own {
		return certExact
	}
	for _, eq := range certEquivalences[req] {
		if own == eq {
			return certEquivalent
		}
	}
	if strings.Contains(own, req) || strings.Contains(req, own) {
		return certPartial
	}
	return certNoMatch
}
