package domain

import "time"

// AnalysisKind identifies one of the fixed structured document analyses.
type AnalysisKind string

// Available analysis kinds.
const (
	// AnalysisSummary is a structured executive summary.
	AnalysisSummary AnalysisKind = "summary"

	// AnalysisRisks flags risky or problematic clauses.
	AnalysisRisks AnalysisKind = "risks"

	// AnalysisChecklist reviews the document against standard provisions.
	AnalysisChecklist AnalysisKind = "checklist"

	// AnalysisObligations extracts obligations, duties and deadlines.
	AnalysisObligations AnalysisKind = "obligations"

	// AnalysisTimeline extracts a chronological timeline of events.
	AnalysisTimeline AnalysisKind = "timeline"
)

// AnalysisKinds returns all supported kinds in a stable order.
func AnalysisKinds() []AnalysisKind {
	return []AnalysisKind{
		AnalysisSummary,
		AnalysisRisks,
		AnalysisChecklist,
		AnalysisObligations,
		AnalysisTimeline,
	}
}

// IsValid returns true if the kind is recognised.
func (k AnalysisKind) IsValid() bool {
	switch k {
	case AnalysisSummary, AnalysisRisks, AnalysisChecklist,
		AnalysisObligations, AnalysisTimeline:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k AnalysisKind) String() string {
	return string(k)
}

// AnalysisRecord is a cached structured analysis result, unique per
// (DocumentID, Kind, TenantID). A refresh replaces the whole Result;
// records are never partially updated.
type AnalysisRecord struct {
	// DocumentID identifies the analysed document.
	DocumentID string

	// Kind is the analysis kind.
	Kind AnalysisKind

	// TenantID scopes the record to its owning tenant.
	TenantID string

	// Result is the structured model output.
	Result map[string]any

	// CreatedAt is when this result was computed.
	CreatedAt time.Time
}
