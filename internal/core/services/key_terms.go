package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// Pattern sets for key-term extraction. All extraction is regular
// matching over the raw document text; nothing here calls a model.
var (
	partyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:between|by and between)\s+([A-Z][A-Za-z\s,\.]+?)(?:\s*\()`),
		regexp.MustCompile(`(?:hereinafter|herein)\s+(?:referred to as|called)\s+["\x{201c}]([^"\x{201d}]+)["\x{201d}]`),
		regexp.MustCompile(`\((?:the\s+)?["\x{201c}]([A-Z][A-Za-z\s]+)["\x{201d}]\)`),
		regexp.MustCompile(`(?:Party|Parties|Contractor|Client|Employer|Employee|Landlord|Tenant|Licensor|Licensee|Vendor|Purchaser|Buyer|Seller|Borrower|Lender|Lessor|Lessee|Plaintiff|Defendant|Petitioner|Respondent):\s*([A-Z][A-Za-z\s,\.]+?)(?:\n|,\s*a\s)`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:day of\s+)?(?:January|February|March|April|May|June|July|August|September|October|November|December),?\s+\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	}

	moneyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand|USD|dollars))?`),
		regexp.MustCompile(`(?i)(?:USD|US\s*Dollars?)\s*[\d,]+(?:\.\d{2})?`),
		regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d{2})?\s+(?:dollars|USD)\b`),
	}

	definedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`["\x{201c}]([A-Z][A-Za-z\s]{2,40})["\x{201d}]\s+(?:means|shall mean|refers to|is defined as)`),
		regexp.MustCompile(`(?:the\s+)?["\x{201c}]([A-Z][A-Za-z\s]{2,40})["\x{201d}](?:\s*\))`),
		regexp.MustCompile(`\((?:the\s+)?["\x{201c}]([A-Z][A-Za-z\s]{2,30})["\x{201d}]\)`),
	}

	governingLawPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:governed by|construed (?:in accordance with|under)|subject to)\s+(?:the\s+)?(?:laws?\s+of\s+)?(?:the\s+)?(?:State\s+of\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`(?:State\s+of|Commonwealth\s+of)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	}

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+\s+U\.?S\.?C\.?\s*§?\s*\d+\b`),
		regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+\.?\s+\d+\b`),
		regexp.MustCompile(`\b[A-Z][a-z]+\s+v\.?\s+[A-Z][a-z]+`),
		regexp.MustCompile(`§\s*\d+[\.\d]*`),
	}
)

const maxReferences = 20

// extractKeyTerms pulls parties, dates, amounts, defined terms,
// governing law and legal references out of the text.
func extractKeyTerms(text string) domain.KeyTerms {
	terms := domain.KeyTerms{}

	for _, pattern := range partyPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			cleaned := strings.TrimRight(strings.TrimSpace(m[1]), ",.")
			if len(cleaned) > 2 && len(cleaned) < 100 && !slices.Contains(terms.Parties, cleaned) {
				terms.Parties = append(terms.Parties, cleaned)
			}
		}
	}

	seenDates := map[string]bool{}
	for _, pattern := range datePatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			d := strings.TrimSpace(m)
			if !seenDates[d] {
				seenDates[d] = true
				terms.Dates = append(terms.Dates, d)
			}
		}
	}

	seenAmounts := map[string]bool{}
	for _, pattern := range moneyPatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			a := strings.TrimSpace(m)
			if !seenAmounts[a] {
				seenAmounts[a] = true
				terms.MonetaryAmounts = append(terms.MonetaryAmounts, a)
			}
		}
	}

	// Defined terms dedupe case-insensitively: "Agreement" and
	// "AGREEMENT" are the same defined term.
	seenDefined := map[string]bool{}
	for _, pattern := range definedPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			term := strings.TrimSpace(m[1])
			key := strings.ToLower(term)
			if len(term) > 2 && !seenDefined[key] {
				seenDefined[key] = true
				terms.DefinedTerms = append(terms.DefinedTerms, term)
			}
		}
	}

	seenLaw := map[string]bool{}
	for _, pattern := range governingLawPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			law := strings.TrimSpace(m[1])
			key := strings.ToLower(law)
			if len(law) > 2 && !seenLaw[key] {
				seenLaw[key] = true
				terms.GoverningLaw = append(terms.GoverningLaw, law)
			}
		}
	}

	seenRefs := map[string]bool{}
	for _, pattern := range referencePatterns {
		for _, m := range pattern.FindAllString(text, -1) {
			r := strings.TrimSpace(m)
			if len(r) > 3 && !seenRefs[r] {
				seenRefs[r] = true
				terms.References = append(terms.References, r)
			}
		}
	}
	if len(terms.References) > maxReferences {
		terms.References = terms.References[:maxReferences]
	}

	return terms
}

// classifyChars bounds how much text classification inspects. Legal
// documents declare their nature up front.
const classifyChars = 5000

// filenameHints score document types from the upload filename.
var filenameHints = map[string][]string{
	"Contract":       {"contract", "agreement", "lease", "nda", "msa", "sow", "amendment"},
	"Pleading":       {"complaint", "motion", "brief", "petition", "answer", "pleading"},
	"Memorandum":     {"memo", "memorandum", "opinion"},
	"Correspondence": {"letter", "email", "notice", "correspondence"},
	"Court Order":    {"order", "judgment", "ruling", "decree"},
	"Corporate":      {"bylaws", "articles", "charter", "resolution", "minutes"},
	"Regulatory":     {"regulation", "compliance", "filing", "rule"},
}

// contentIndicators score document types from phrases in the text.
var contentIndicators = map[string][]string{
	"Contract": {
		"hereby agrees", "shall be binding", "term of this agreement",
		"representations and warranties", "indemnif", "governing law",
		"entire agreement", "counterparts", "force majeure", "whereas",
		"now, therefore", "witnesseth",
	},
	"Pleading": {
		"comes now", "respectfully", "plaintiff", "defendant",
		"this court", "jurisdiction", "cause of action", "prayer for relief",
		"count i", "wherefore", "court of",
	},
	"Memorandum": {
		"memorandum", "legal analysis", "issue presented", "conclusion",
		"discussion", "brief answer", "question presented",
	},
	"Correspondence": {
		"dear ", "sincerely", "regards", "please find", "enclosed",
		"pursuant to our conversation", "i am writing",
	},
	"Court Order": {
		"it is hereby ordered", "the court finds", "so ordered",
		"it is therefore", "judgment is entered",
	},
	"Corporate": {
		"board of directors", "shareholders", "resolution",
		"bylaws", "articles of incorporation", "corporate",
	},
	"Regulatory": {
		"pursuant to regulation", "compliance", "regulatory",
		"filing requirement", "sec ", "federal register",
	},
}

// documentTypes lists the classification outcomes in scoring-tie order.
var documentTypes = []string{
	"Contract", "Pleading", "Memorandum", "Correspondence",
	"Court Order", "Corporate", "Regulatory",
}

// classifyDocument scores the text and filename against the known
// document types. Filename hints weigh heavier than content phrases.
// "Other" when nothing matched at all.
func classifyDocument(text, filename string) string {
	lowerText := strings.ToLower(cutAtRune(text, classifyChars))
	lowerName := strings.ToLower(filename)

	scores := map[string]int{}
	for docType, keywords := range filenameHints {
		for _, kw := range keywords {
			if strings.Contains(lowerName, kw) {
				scores[docType] += 3
			}
		}
	}
	for docType, indicators := range contentIndicators {
		for _, ind := range indicators {
			if strings.Contains(lowerText, ind) {
				scores[docType]++
			}
		}
	}

	best, bestScore := "Other", 0
	for _, docType := range documentTypes {
		if scores[docType] > bestScore {
			best, bestScore = docType, scores[docType]
		}
	}
	return best
}

// Key-term list caps, matching what the report surfaces.
const (
	maxParties      = 15
	maxDates        = 20
	maxAmounts      = 20
	maxDefinedTerms = 30
	maxGoverningLaw = 5
)

func capList(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

// KeyTerms extracts the key terms of a ready document and classifies
// it. Extraction is pure pattern matching over the document text; the
// result is recomputed on every call.
func (s *AnalysisService) KeyTerms(ctx context.Context, tenantID, documentID string) (*domain.KeyTermsReport, error) {
	doc, err := s.docStore.Get(ctx, tenantID, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	if doc.Status != domain.StatusReady {
		return nil, fmt.Errorf("document %s is %s: %w", documentID, doc.Status, domain.ErrNotReady)
	}

	text, err := s.texts.Text(ctx, tenantID, documentID)
	if err != nil {
		return nil, fmt.Errorf("extracting document text: %w", err)
	}

	logger.Debug("Extracting key terms for document %s", documentID)

	terms := extractKeyTerms(text)
	terms.Parties = capList(terms.Parties, maxParties)
	terms.Dates = capList(terms.Dates, maxDates)
	terms.MonetaryAmounts = capList(terms.MonetaryAmounts, maxAmounts)
	terms.DefinedTerms = capList(terms.DefinedTerms, maxDefinedTerms)
	terms.GoverningLaw = capList(terms.GoverningLaw, maxGoverningLaw)

	return &domain.KeyTermsReport{
		DocumentID:   documentID,
		Filename:     doc.Filename,
		DocumentType: classifyDocument(text, doc.Filename),
		Terms:        terms,
	}, nil
}
