package matching

// Path match scores. Exact matches outrank parameterized matches, which
// outrank wildcard matches.
const (
	// ScorePathExact is the score for an exact path match.
	ScorePathExact = 15

	// ScorePathParams is the score for a path matched through ":name"
	// parameter segments.
	ScorePathParams = 12

	// ScorePathWildcard is the score for a path matched through "*"
	// wildcard segments.
	ScorePathWildcard = 10
)

// Scores contributed by non-path criteria.
const (
	// ScoreMethod is added when a route carries an explicit method filter.
	// It guarantees a method-qualified key outranks a bare key for the
	// same path.
	ScoreMethod = 10

	// ScoreHeader is added per matched header predicate.
	ScoreHeader = 10

	// ScoreQueryParam is added per matched query parameter predicate.
	ScoreQueryParam = 5

	// ScoreBodyContains is the score for a body substring predicate.
	ScoreBodyContains = 20

	// ScoreJSONPath is added per matched JSONPath body condition.
	ScoreJSONPath = 15
)
