package dispatch

import (
	"net/http"
	"sort"

	"github.com/getmockd/fetchmock/internal/matching"
	"github.com/getmockd/fetchmock/internal/routekey"
	"github.com/getmockd/fetchmock/pkg/route"
)

// Match describes the route that won the match for a request.
type Match struct {
	Entry  route.Entry
	Score  int
	Params route.Params
}

// Select finds the best matching route for a request. Returns nil if
// nothing matches. body is the already-read request body, passed
// separately so the body is only read once per dispatch.
//
// Selection is deterministic: candidates are ranked by total match score
// (method-qualified keys and more specific paths score higher), and equal
// scores fall back to registration order, earliest first. The same
// snapshot and request always select the same route.
func Select(snapshot []route.Entry, r *http.Request, body []byte) *Match {
	var matches []Match

	for _, e := range snapshot {
		key := routekey.Parse(e.Key)
		score := entryScore(key, e.Criteria, r, body)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{
			Entry:  e,
			Score:  score,
			Params: matching.PathParams(key.Pattern, r.URL.Path),
		})
	}

	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.Seq < matches[j].Entry.Seq
	})

	return &matches[0]
}

// entryScore computes the total match score of one route against a
// request. Returns 0 when any required criterion fails. The request's
// query string never participates in path matching; only the explicit
// Query criteria may inspect it.
func entryScore(key routekey.Key, c *route.Criteria, r *http.Request, body []byte) int {
	if !key.MatchesMethod(r.Method) {
		return 0
	}

	score := matching.MatchPath(key.Pattern, r.URL.Path)
	if score == 0 {
		return 0
	}
	if key.HasMethod {
		score += matching.ScoreMethod
	}

	if c == nil {
		return score
	}

	for name, want := range c.Headers {
		if !matching.MatchHeader(name, want, r.Header) {
			return 0
		}
		score += matching.ScoreHeader
	}

	if len(c.Query) > 0 {
		query := r.URL.Query()
		for name, want := range c.Query {
			if !matching.MatchQueryParam(name, want, query) {
				return 0
			}
			score += matching.ScoreQueryParam
		}
	}

	if c.BodyContains != "" {
		if !matching.MatchBodyContains(c.BodyContains, body) {
			return 0
		}
		score += matching.ScoreBodyContains
	}

	if len(c.BodyJSONPath) > 0 {
		jpScore := matching.MatchJSONPath(c.BodyJSONPath, body)
		if jpScore == 0 {
			return 0
		}
		score += jpScore
	}

	return score
}
