package extract

import "regexp"

// Block delimiters. Each matches the whole first line of a block.
var (
	policyDelimiter   = regexp.MustCompile(`(?m)^Policy #\d+ .+`)
	claimDelimiter    = regexp.MustCompile(`(?m)^Claim #\d+ .+`)
	operatorDelimiter = regexp.MustCompile(`(?m)^Operator:.*`)
	vehicleDelimiter  = regexp.MustCompile(`(?m)^Vehicle #\d+: .+`)
)

// Segmenter splits text into blocks that each begin at a delimiter line.
type Segmenter struct {
	delimiter *regexp.Regexp
}

// NewSegmenter creates a segmenter for the given delimiter pattern.
func NewSegmenter(delimiter *regexp.Regexp) Segmenter {
	return Segmenter{delimiter: delimiter}
}

// Split returns the blocks of text in document order. Each block runs
// from one delimiter match up to the next, or to the end of the text.
// Text before the first delimiter is discarded.
func (s Segmenter) Split(text string) []string {
	starts := s.delimiter.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}

	blocks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		blocks = append(blocks, text[loc[0]:end])
	}
	return blocks
}

// truncateAt cuts text at the first match of re.
func truncateAt(text string, re *regexp.Regexp) string {
	if loc := re.FindStringIndex(text); loc != nil {
		return text[:loc[0]]
	}
	return text
}
