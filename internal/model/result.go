package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Result is a graded test submission.
type Result struct {
	ID           int64     `json:"id"`
	TestID       int64     `json:"test_id"`
	Name         string    `json:"name"`
	Marks        int       `json:"marks"`
	TotalMarks   int       `json:"total_marks"`
	Difficulty   string    `json:"difficulty"`
	Subject      string    `json:"subject"`
	StudentEmail string    `json:"student_email"`
	TeacherEmail string    `json:"teacher_email"`
	Data         string    `json:"data"` // submitted responses as JSON text
	SubmittedAt  time.Time `json:"submitted_at"`
}

// ResultsQuery selects the results of one student.
type ResultsQuery struct {
	Email string `form:"email" binding:"required"`
}

// SubmitRequest is the payload of a test submission.
type SubmitRequest struct {
	User      *SubmitUser `json:"user" binding:"required"`
	Test      *SubmitTest `json:"test" binding:"required"`
	Responses *Responses  `json:"responses" binding:"required"`
}

// SubmitUser identifies the submitting student.
type SubmitUser struct {
	Email string `json:"email" binding:"required"`
}

// SubmitTest echoes the test being submitted, as returned by the tests
// listing.
type SubmitTest struct {
	ID         TestID `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Marks      *int   `json:"marks" binding:"required,gte=0"`
	Difficulty string `json:"difficulty" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Teacher    string `json:"teacher" binding:"required"`
}

// TestID keeps the raw text of an integer-like id. Clients send it either
// as a JSON number or as a string; interpretation is left to grading.
type TestID string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TestID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TestID(s)
	default:
		*t = TestID(b)
	}
	return nil
}

// ResponseItem is one answered question.
type ResponseItem struct {
	SelectedOption Option `json:"selected_option"`
	CorrectOption  Option `json:"correct_option"`
}

// Option is an option label as sent by the client. Labels may be any JSON
// value, so the compacted JSON text is kept instead of forcing a string.
// An absent label is the same as null.
type Option json.RawMessage

var jsonNull = []byte("null")

// UnmarshalJSON implements json.Unmarshaler.
func (o *Option) UnmarshalJSON(b []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*o = buf.Bytes()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Option) MarshalJSON() ([]byte, error) {
	if len(o) == 0 {
		return jsonNull, nil
	}
	return o, nil
}

// Equal reports whether two labels hold the same JSON value. 1 and "1" are
// different labels; null equals null.
func (o Option) Equal(other Option) bool {
	return bytes.Equal(o.value(), other.value())
}

func (o Option) value() []byte {
	if len(o) == 0 {
		return jsonNull
	}
	return o
}

// Responses is the submitted answer list. Raw keeps the array exactly as
// sent (compacted) so it can be stored verbatim.
type Responses struct {
	Items []ResponseItem
	Raw   json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Responses) UnmarshalJSON(b []byte) error {
	var items []ResponseItem
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}

	r.Items = items
	r.Raw = buf.Bytes()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Responses) MarshalJSON() ([]byte, error) {
	if r.Raw != nil {
		return r.Raw, nil
	}
	if r.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Items)
}
