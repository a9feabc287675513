package domain

// ClauseCategory is a pre-built clause search: a named clause type with
// the retrieval queries that find instances of it.
type ClauseCategory struct {
	// ID is the stable identifier used to select the clause type.
	ID string

	// Name is the display name.
	Name string

	// Description explains what the clause type covers.
	Description string

	// Queries are the retrieval queries run for this clause type.
	Queries []string

	// Category groups related clause types.
	Category string
}

// clauseLibrary is the fixed set of clause searches lawyers commonly
// need, in display order.
var clauseLibrary = []ClauseCategory{
	{
		ID:          "indemnification",
		Name:        "Indemnification",
		Description: "Clauses requiring one party to compensate the other for losses",
		Queries: []string{
			"indemnification hold harmless defend",
			"indemnify and hold harmless against any and all claims losses",
			"shall indemnify defend and hold harmless",
		},
		Category: "Risk Allocation",
	},
	{
		ID:          "limitation_of_liability",
		Name:        "Limitation of Liability",
		Description: "Caps on damages and liability exclusions",
		Queries: []string{
			"limitation of liability shall not exceed",
			"in no event shall liability exceed aggregate",
			"consequential incidental special punitive damages",
		},
		Category: "Risk Allocation",
	},
	{
		ID:          "termination",
		Name:        "Termination",
		Description: "Conditions and procedures for ending the agreement",
		Queries: []string{
			"termination for cause breach material default",
			"termination for convenience upon written notice",
			"right to terminate this agreement",
		},
		Category: "Term & Termination",
	},
	{
		ID:          "force_majeure",
		Name:        "Force Majeure",
		Description: "Excuses for non-performance due to extraordinary events",
		Queries: []string{
			"force majeure act of god natural disaster pandemic",
			"excused from performance beyond reasonable control",
		},
		Category: "Risk Allocation",
	},
	{
		ID:          "confidentiality",
		Name:        "Confidentiality / NDA",
		Description: "Obligations to protect confidential information",
		Queries: []string{
			"confidential information shall not disclose",
			"non-disclosure proprietary information trade secret",
			"confidentiality obligations survive termination",
		},
		Category: "Information Protection",
	},
	{
		ID:          "governing_law",
		Name:        "Governing Law & Jurisdiction",
		Description: "Choice of law and dispute resolution forum",
		Queries: []string{
			"governing law construed in accordance with laws of the state",
			"exclusive jurisdiction venue courts",
			"dispute resolution arbitration mediation",
		},
		Category: "Dispute Resolution",
	},
	{
		ID:          "intellectual_property",
		Name:        "Intellectual Property",
		Description: "Ownership, licensing, and assignment of IP rights",
		Queries: []string{
			"intellectual property rights ownership assignment",
			"license grant exclusive non-exclusive royalty",
			"work made for hire copyright patent trademark",
		},
		Category: "IP & Ownership",
	},
	{
		ID:          "representations_warranties",
		Name:        "Representations & Warranties",
		Description: "Statements of fact and promises about conditions",
		Queries: []string{
			"represents and warrants authority to enter",
			"representations warranties covenants",
			"to the best of knowledge no material adverse",
		},
		Category: "Assurances",
	},
	{
		ID:          "assignment",
		Name:        "Assignment & Delegation",
		Description: "Restrictions on transferring rights or obligations",
		Queries: []string{
			"shall not assign without prior written consent",
			"assignment transfer delegation binding upon successors",
		},
		Category: "General Provisions",
	},
	{
		ID:          "notices",
		Name:        "Notices",
		Description: "Requirements for formal communications between parties",
		Queries: []string{
			"notices shall be in writing delivered to",
			"notice deemed given upon receipt certified mail",
		},
		Category: "General Provisions",
	},
	{
		ID:          "non_compete",
		Name:        "Non-Compete / Non-Solicitation",
		Description: "Restrictions on competition and soliciting clients or employees",
		Queries: []string{
			"non-compete restrictive covenant shall not engage",
			"non-solicitation shall not solicit employees clients",
		},
		Category: "Restrictive Covenants",
	},
	{
		ID:          "payment_terms",
		Name:        "Payment Terms",
		Description: "Payment schedules, invoicing, late fees",
		Queries: []string{
			"payment terms net days invoice due upon receipt",
			"late payment interest penalty past due",
		},
		Category: "Financial",
	},
}

// ClauseLibrary returns all clause categories in display order. The
// returned slice is shared; callers must not modify it.
func ClauseLibrary() []ClauseCategory {
	return clauseLibrary
}

// ClauseByID returns the clause category with the given ID, or nil when
// none matches.
func ClauseByID(id string) *ClauseCategory {
	for i := range clauseLibrary {
		if clauseLibrary[i].ID == id {
			return &clauseLibrary[i]
		}
	}
	return nil
}
