package formatters

import (
	"slices"
	"strconv"
	"strings"
)

type mediaRange struct {
	typ, sub string
	q        float64
}

// Negotiate picks the media type from available that best satisfies the
// Accept header. An empty header selects the first available type. It
// returns "" when nothing is acceptable.
func Negotiate(accept string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if strings.TrimSpace(accept) == "" {
		return available[0]
	}

	ranges := parseAccept(accept)

	best, bestQ, bestSpec := "", 0.0, -1
	for _, offer := range available {
		typ, sub, _ := strings.Cut(strings.ToLower(offer), "/")
		q, spec := 0.0, -1
		for _, r := range ranges {
			s := r.specificity(typ, sub)
			if s > spec {
				q, spec = r.q, s
			}
		}
		if spec < 0 || q <= 0 {
			continue
		}
		if q > bestQ || (q == bestQ && spec > bestSpec) {
			best, bestQ, bestSpec = offer, q, spec
		}
	}
	return best
}

// specificity returns 2 for an exact match, 1 for type/*, 0 for */*
// and -1 when the range does not match.
func (r mediaRange) specificity(typ, sub string) int {
	switch {
	case r.typ == typ && r.sub == sub:
		return 2
	case r.typ == typ && r.sub == "*":
		return 1
	case r.typ == "*" && r.sub == "*":
		return 0
	default:
		return -1
	}
}

func parseAccept(accept string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(accept, ",") {
		params := strings.Split(part, ";")
		media := strings.ToLower(strings.TrimSpace(params[0]))
		typ, sub, ok := strings.Cut(media, "/")
		if !ok || typ == "" || sub == "" {
			continue
		}

		r := mediaRange{typ: typ, sub: sub, q: 1}
		for _, p := range params[1:] {
			k, v, _ := strings.Cut(strings.TrimSpace(p), "=")
			if strings.EqualFold(k, "q") {
				if q, err := strconv.ParseFloat(v, 64); err == nil {
					r.q = q
				}
			}
		}
		ranges = append(ranges, r)
	}

	slices.SortStableFunc(ranges, func(a, b mediaRange) int {
		switch {
		case a.q > b.q:
			return -1
		case a.q < b.q:
			return 1
		default:
			return 0
		}
	})
	return ranges
}
