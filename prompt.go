package hcprofile

import (
	"strings"
)

// MaxPromptChars is the default number of raw-content characters sent to
// the language model.
const MaxPromptChars = 35000

// TruncateContent returns at most n characters (not bytes) of s.
func TruncateContent(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

const promptTemplate = `Extract and preserve EXACT text from these sections of the healthcare professional's website:
{{content}}

Return as JSON with these fields. PRESERVE ORIGINAL FORMATTING, LINE BREAKS, AND FULL TEXT:
{
    "overview": "Full text from 'About' section with all details",
    "specialty": "Complete specialties text with all subspecialties",
    "expertise": "Full expertise description text",
    "awards_publications": "Complete awards and publications text with all entries",
    "qualifications": "Full educational background including all degrees, certifications, and training programs",
    "areas_of_expertise": "Detailed practice areas text with all listed specialties",
    "patient_testimonials": "Complete testimonial texts with patient comments",
    "faqs": {
        "Full question 1": "Full answer 1",
        "Full question 2": "Full answer 2"
    }
}

CRITICAL INSTRUCTIONS:
1. Copy text verbatim without any summarization
2. Preserve original paragraph structure and line breaks
3. Include ALL details without exception
4. Maintain exact wording from website including technical terms
5. Never condense information into bullet points unless originally present
6. Keep full certification names with issuing organizations
7. Preserve any existing formatting like bullet points or numbering
`

// BuildPrompt returns the extraction prompt for the raw content.
// Only the first limit characters of content are included; a limit of zero
// or less uses MaxPromptChars.
func BuildPrompt(content string, limit int) string {
	if limit <= 0 {
		limit = MaxPromptChars
	}
	return strings.Replace(promptTemplate, "{{content}}", TruncateContent(content, limit), 1)
}
