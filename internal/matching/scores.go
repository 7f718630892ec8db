package matching

// Specificity score constants for template matching.
// Higher scores indicate more specific templates.
const (
	// ScoreLiteralSegment is the score for a segment without placeholders.
	ScoreLiteralSegment = 4

	// ScorePartialSegment is the score for a segment mixing literal text and placeholders.
	ScorePartialSegment = 2

	// ScoreParamSegment is the score for a segment that is a single placeholder.
	ScoreParamSegment = 1

	// ScoreMultiSegment is the score for a placeholder that may span several segments.
	ScoreMultiSegment = 0

	// ScoreQueryConstraint is the score for each x-ms-paths query constraint.
	ScoreQueryConstraint = 3
)
