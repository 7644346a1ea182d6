package prebill

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/prebill-link/internal/model"
)

// Field patterns, one ordered fallback chain per field. Chains are tried
// in order and the first match wins; each field is evaluated independently
// of the others, so one label missing from a block never aborts the rest.
var (
	fileIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`File #: (\S+)`),
		regexp.MustCompile(`File #:\s*(\S+)`),
	}
	clientPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Approved By: _______\s*\n\s*([A-Z][a-z]+ [A-Z][a-z]+)`),
		// Fallback: the first line after the marker is usually the client.
		regexp.MustCompile(`(?m)^\s*PRE-BILL\s*\n\s*(.*?)\s*\n`),
	}
	feesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Total Fees\s*\n\s*([0-9.,]+)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Date:\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`),
	}
	disbursementsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Total Taxable Disbursements\s*\$([0-9.,]+)`),
	}
	hstPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Total HST on Disbursements\s*\$([0-9.,]+)`),
	}
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Total\s*\$([0-9.,]+)`),
	}
	arBalancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`A/R Balance:\s*\$([0-9.,]+)`),
	}

	// Source file numbers are sometimes contaminated with a page-number
	// annotation ("ABC123Page 2" reflowed into the token).
	pageWord = regexp.MustCompile(`(?i)Page`)
)

// firstMatch tries patterns in order against block and returns the first
// capture group of the first pattern that matches.
func firstMatch(block string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

func matchText(block string, patterns []*regexp.Regexp) model.NullString {
	if v, ok := firstMatch(block, patterns); ok {
		return model.String(v)
	}
	return model.NullString{}
}

func matchAmount(block string, patterns []*regexp.Regexp) model.Amount {
	if v, ok := firstMatch(block, patterns); ok {
		return model.MatchedAmount(v)
	}
	return model.Amount{}
}

// Reference builds the deep link for the block at index. Each record spans
// two physical pages, so block i starts on page 2i+1. The format is a
// contract with the viewer that resolves links into jump-to-page actions.
func Reference(sourceName string, index int) string {
	return fmt.Sprintf("%s?pdf=%s&page=%d", sourceName, sourceName, index*2+1)
}

// extractOne applies every field chain to a single block.
func extractOne(block model.RecordBlock, sourceName string) model.ExtractedRecord {
	rec := model.ExtractedRecord{
		FileID:                    matchText(block.Text, fileIDPatterns),
		Client:                    matchText(block.Text, clientPatterns),
		Fees:                      matchAmount(block.Text, feesPatterns),
		Date:                      matchText(block.Text, datePatterns),
		TotalTaxableDisbursements: matchAmount(block.Text, disbursementsPatterns),
		TotalHSTOnDisbursements:   matchAmount(block.Text, hstPatterns),
		Total:                     matchAmount(block.Text, totalPatterns),
		ARBalance:                 matchAmount(block.Text, arBalancePatterns),
		Reference:                 Reference(sourceName, block.Index),
	}

	if rec.FileID.Valid {
		rec.FileID.Value = strings.TrimSpace(pageWord.ReplaceAllString(rec.FileID.Value, ""))
	}
	return rec
}

// Extract produces one structured record per block, in block order.
func Extract(blocks []model.RecordBlock, sourceName string) []model.ExtractedRecord {
	records := make([]model.ExtractedRecord, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, extractOne(b, sourceName))
	}
	return records
}
