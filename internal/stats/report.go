package stats

import (
	"github.com/verte-zerg/kanaflow/internal/session"
)

// CurveWindow is the moving-average window of the review curve.
const CurveWindow = 3

// Report contains precomputed data for the end-of-session review.
type Report struct {
	Summary session.Summary
	History []session.AnswerRecord
	Curve   string
	Missed  []Miss
}

// BuildReport prepares the review of a finished session.
func BuildReport(sum session.Summary, history []session.AnswerRecord) Report {
	return Report{
		Summary: sum,
		History: history,
		Curve:   Sparkline(MovingAverage(Hits(history), CurveWindow)),
		Missed:  TopMissed(history, 5),
	}
}
