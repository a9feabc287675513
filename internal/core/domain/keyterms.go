package domain

// KeyTerms holds the legally significant terms found in a document by
// pattern matching. Extraction is deterministic; no model is involved.
type KeyTerms struct {
	// Parties are the contracting or litigating parties.
	Parties []string

	// Dates are date expressions in any recognised format.
	Dates []string

	// MonetaryAmounts are currency expressions.
	MonetaryAmounts []string

	// DefinedTerms are capitalised terms the document defines.
	DefinedTerms []string

	// GoverningLaw lists jurisdictions the document submits to.
	GoverningLaw []string

	// References are statute and case citations, capped at 20.
	References []string
}

// KeyTermsReport is the key-term extraction for one document, together
// with its rule-based classification.
type KeyTermsReport struct {
	// DocumentID identifies the analysed document.
	DocumentID string

	// Filename is the document's upload filename.
	Filename string

	// DocumentType is the classified type, "Other" when nothing matched.
	DocumentType string

	// Terms are the extracted key terms.
	Terms KeyTerms
}
