package prebill

import (
	"regexp"
	"strings"

	"github.com/sells-group/prebill-link/internal/model"
)

// Marker is the literal that opens each pre-bill record in the extracted
// document text.
const Marker = "PRE-BILL"

// markerPattern matches the marker with optional whitespace between
// characters: pdf text extraction renders the letter-spaced heading as
// "P R E - B I L L".
var markerPattern = regexp.MustCompile(`P\s*R\s*E\s*-\s*B\s*I\s*L\s*L`)

// Segment splits raw document text into per-record blocks. Content before
// the first marker is discarded, as are blocks that are empty after
// trimming. Each retained block is re-prefixed with the marker literal so
// field patterns can anchor on it. Zero occurrences of the marker yield an
// empty sequence, not an error.
func Segment(text string) []model.RecordBlock {
	pieces := markerPattern.Split(text, -1)
	if len(pieces) < 2 {
		return nil
	}

	var blocks []model.RecordBlock
	for _, piece := range pieces[1:] {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		blocks = append(blocks, model.RecordBlock{
			Index: len(blocks),
			Text:  Marker + piece,
		})
	}
	return blocks
}
