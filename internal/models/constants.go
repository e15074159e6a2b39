package models

const (
	// SectionHeadingRegex splits document text on heading cues: numbered or
	// lettered headings, ALL-CAPS headings, and explicit "SECTION n" markers.
	SectionHeadingRegex = `(?:\n|\r\n)(?:[A-Z0-9][\.\)]\s+[A-Z]|[A-Z]{2,}|(?:SECTION|Section)\s+\d+)`

	ParagraphSplitRegex = `\n\s*\n`

	// Page-number patterns stripped by the noise filter.
	PageOfPagesRegex = `\b\d+\s*(?:of|/)\s*\d+\b`
	PageLabelRegex   = `\bPage\s*\d+\b`

	PunctuationRegex = `[^\w\s]`
	WhitespaceRegex  = `\s+`
)

// BoilerplateWords are deleted case-insensitively wherever they appear.
var BoilerplateWords = []string{"confidential", "proprietary"}

// Regions is the fixed vocabulary of regional tags.
var Regions = []string{
	"Alberta", "British Columbia", "Manitoba", "New Brunswick",
	"Newfoundland and Labrador", "Nova Scotia", "Ontario", "Prince Edward Island",
	"Quebec", "Saskatchewan", "Northwest Territories", "Nunavut", "Yukon",
}

// Categories is the fixed vocabulary of document category tags.
var Categories = []string{
	"Information Technology", "Construction", "Healthcare", "Consulting",
	"Professional Services", "Engineering", "Manufacturing", "Transportation",
	"Education", "Research", "Software Development", "Hardware", "Infrastructure",
}
