package splitmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds for the requested section count
const (
	MinSections = 1
	MaxSections = 50
)

// system primes the model for the splitting task
const system = `You segment markdown documents into presentation-ready sections.`

// ParseCount parses a user-supplied section count and validates the range.
func ParseCount(input string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &CountError{Input: input}
	}
	if count < MinSections || count > MaxSections {
		return 0, &RangeError{Count: count}
	}
	return count, nil
}

// Prompt builds the instruction for splitting doc into count sections. The
// count and the full document text appear verbatim.
func Prompt(doc Document, count int) (string, error) {
	if count < MinSections || count > MaxSections {
		return "", &RangeError{Count: count}
	}
	return fmt.Sprintf(promptFormat, count, count, doc), nil
}

const promptFormat = `Split the following markdown document into exactly %d sections.

CONTENT PRESERVATION
- Do not modify, rewrite, or remove any text. The sections must match the
  original document exactly when rejoined.
- Preserve all markdown formatting: headings, lists, fenced code blocks,
  tables, links, whitespace and line breaks.

SECTION BOUNDARIES
- Each section must contain one complete, coherent idea.
- Prefer headings as split points.
- Never split in the middle of a sentence, a fenced code block, a list, a
  table, or a blockquote.
- If the document has no headings, split at topic transitions, never
  mid-paragraph.
- Do not produce a section that contains only a heading.

LENGTH BALANCING
- Keep sections roughly equal in length while keeping ideas intact. Combine
  small related ideas or split large ones at natural transition points as
  needed.

OUTPUT FORMAT
- Return only a JSON array of %d strings, one per section, preserving all
  original whitespace and formatting.
- No explanations, no code fences, no metadata.

Now, process the following document:

%s`
