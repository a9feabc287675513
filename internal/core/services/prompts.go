package services

import "unicode/utf8"

// maxAnalysisChars caps how much document text goes into one analysis
// prompt.
const maxAnalysisChars = 12000

// maxCompareChars caps each side of a document comparison prompt.
const maxCompareChars = 6000

// maxMemoChars caps the research excerpts fed to the memorandum prompt.
const maxMemoChars = 10000

// truncationNotice is appended when document text is cut.
const truncationNotice = "\n\n[... document truncated for analysis ...]"

// jsonOnlySystem variants keep model output machine-readable.
const (
	summarySystem     = "You are a legal document analyst. Return only valid JSON."
	risksSystem       = "You are a legal risk analyst. Return only valid JSON."
	checklistSystem   = "You are a contract review specialist. Return only valid JSON."
	obligationsSystem = "You are a legal obligations analyst. Return only valid JSON."
	timelineSystem    = "You are a legal timeline analyst. Return only valid JSON."
	compareSystem     = "You are a legal document comparison specialist. Return only valid JSON."
	expandSystem      = "You are a legal search assistant. Return only valid JSON."
	memoSystem        = "You are a legal research memo writer. Return only valid JSON."
	followUpsSystem   = "You are a legal document assistant. Return only a valid JSON array of 3 strings."
)

const summaryPrompt = `Analyze this legal document and provide a structured summary.

DOCUMENT:
%s

Return a JSON object with these fields:
- "title": a short descriptive title for the document
- "summary": a 2-3 paragraph executive summary
- "document_type": the type of document (e.g. "Employment Agreement", "NDA", "Lease")
- "key_points": an array of 5-8 key points (strings)
- "parties": an array of party names mentioned

Return ONLY valid JSON, no other text.`

const risksPrompt = `Analyze this legal document for risks and problematic clauses.

DOCUMENT:
%s

Return a JSON object with:
- "overall_risk": "low", "medium", or "high"
- "risk_score": integer 0-100 (0=no risk, 100=extremely risky)
- "risks": array of objects, each with:
  - "clause": the clause text or reference
  - "risk_level": "low", "medium", or "high"
  - "description": explanation of the risk
  - "recommendation": suggested action or mitigation
- "summary": a brief overall risk assessment paragraph

Return ONLY valid JSON, no other text.`

const checklistPrompt = `Review this legal document against standard contract provisions and generate a checklist.

DOCUMENT:
%s

Return a JSON object with:
- "checklist": array of objects, each with:
  - "provision": name of the standard provision (e.g. "Termination Clause", "Indemnification")
  - "status": "pass", "fail", or "review"
  - "detail": brief explanation of what was found or missing
  - "section": section reference if found, or null
- "score": percentage of items that pass (integer 0-100)
- "summary": brief overall assessment

Standard provisions to check: Parties Defined, Term/Duration, Payment Terms, Termination, Indemnification, Limitation of Liability, Confidentiality, IP Rights, Governing Law, Dispute Resolution, Force Majeure, Assignment, Notices, Entire Agreement, Amendments.

Return ONLY valid JSON, no other text.`

const obligationsPrompt = `Extract all obligations, duties, and deadlines from this legal document.

DOCUMENT:
%s

Return a JSON object with:
- "obligations": array of objects, each with:
  - "party": which party has the obligation
  - "obligation": description of the obligation or duty
  - "type": "obligation", "duty", "right", or "restriction"
  - "deadline": deadline date or timeframe if specified, or null
  - "section": section reference if available, or null
  - "priority": "high", "medium", or "low"
- "upcoming_deadlines": array of objects with "date", "description", "party" for time-sensitive items
- "summary": brief overview of key obligations

Return ONLY valid JSON, no other text.`

const timelinePrompt = `Extract a chronological timeline of events, dates, and milestones from this legal document.

DOCUMENT:
%s

Return a JSON object with:
- "events": array of objects, each with:
  - "date": the date or date description (e.g. "January 1, 2024" or "30 days after execution")
  - "event": description of what happens
  - "category": one of "execution", "deadline", "payment", "renewal", "termination", "notice", "other"
  - "party": which party is involved, or null
- "duration": overall contract/document duration if applicable
- "key_dates_summary": brief paragraph summarizing the most important dates

Return ONLY valid JSON, no other text.`

const comparePrompt = `Compare these two legal documents and identify key differences and similarities.

DOCUMENT A (%s):
%s

DOCUMENT B (%s):
%s

Return a JSON object with:
- "provisions": array of objects, each with:
  - "provision": name of the provision being compared
  - "document_a": what Document A says (brief), or "Not found"
  - "document_b": what Document B says (brief), or "Not found"
  - "status": "match", "different", "only_a", or "only_b"
- "key_differences": array of strings describing the most significant differences
- "similarities": array of strings describing key similarities
- "recommendation": brief recommendation about which document is more favorable or comprehensive

Return ONLY valid JSON, no other text.`

const expandQueryPrompt = `Given this legal search query, suggest expanded and alternative queries using legal terminology and synonyms.

QUERY: "%s"

Return a JSON object with:
- "original": the original query
- "suggestions": array of 4-6 alternative or expanded search queries that would help find relevant legal content
- "legal_terms": array of relevant legal terms or concepts related to the query

Return ONLY valid JSON, no other text.`

const memoPrompt = `Generate a legal memorandum based on the following research excerpts.

TOPIC: %s

RESEARCH EXCERPTS:
%s

Write a professional legal memorandum with:
1. Title
2. Issue/Question Presented
3. Brief Answer
4. Discussion (citing the sources using [1], [2] notation)
5. Conclusion

Return a JSON object with:
- "title": memo title
- "issue": the legal question presented
- "brief_answer": concise answer
- "discussion": detailed discussion with citations
- "conclusion": concluding paragraph
- "sources_used": array of source numbers used (integers)

Return ONLY valid JSON, no other text.`

const followUpsPrompt = `Based on this Q&A exchange about legal documents, suggest 3 natural follow-up questions the user might want to ask.

QUESTION: %s
ANSWER: %s

Return a JSON array of exactly 3 follow-up question strings. Each should be specific and relevant.

Return ONLY a JSON array, no other text.`

// truncate cuts text at maxChars and marks the cut.
func truncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	return cutAtRune(text, maxChars) + truncationNotice
}

// cutAtRune cuts text at maxBytes without splitting a UTF-8 rune.
// Legal text is full of smart quotes and section marks; a byte-indexed
// cut would feed invalid UTF-8 into the prompt.
func cutAtRune(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	for maxBytes > 0 && !utf8.RuneStart(text[maxBytes]) {
		maxBytes--
	}
	return text[:maxBytes]
}
