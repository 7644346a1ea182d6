package model

import "encoding/json"

// NullString is a textual field that may be absent. Absence serializes as
// JSON null, matching what link consumers expect for "no textual data".
type NullString struct {
	Value string
	Valid bool
}

// String wraps s in a valid NullString.
func String(s string) NullString {
	return NullString{Value: s, Valid: true}
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NullString{Value: s, Valid: true}
	return nil
}

// Amount is a monetary field kept as its matched text to preserve the
// source formatting (thousands separators, decimal precision). An absent
// amount serializes as the numeric 0 sentinel, which downstream sheets
// distinguish from a matched "0.00".
type Amount struct {
	Text    string
	Matched bool
}

// MatchedAmount wraps text in a matched Amount.
func MatchedAmount(text string) Amount {
	return Amount{Text: text, Matched: true}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Matched {
		return []byte("0"), nil
	}
	return json.Marshal(a.Text)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "0" {
		*a = Amount{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Amount{Text: s, Matched: true}
	return nil
}

// RecordBlock is one segment of raw document text belonging to a single
// pre-bill record. Index is the block's 0-based position among retained
// blocks; Text starts with the marker literal.
type RecordBlock struct {
	Index int
	Text  string
}

// ExtractedRecord is the structured form of one pre-bill block. Every
// field except Reference is independently optional: a pattern that does
// not match leaves its default without affecting the others.
type ExtractedRecord struct {
	FileID                    NullString `json:"File"`
	Client                    NullString `json:"Client"`
	Fees                      Amount     `json:"Fees"`
	Date                      NullString `json:"Date"`
	TotalTaxableDisbursements Amount     `json:"Total Taxable Disbursements"`
	TotalHSTOnDisbursements   Amount     `json:"Total HST On Disbursements"`
	Total                     Amount     `json:"Total"`
	ARBalance                 Amount     `json:"Ar Balance"`
	Reference                 string     `json:"Link"`
}
