// Package grading holds the pure computations behind a test submission:
// the result identifier derived from the test id and the marks count.
package grading

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/azeem30/aptipro-student-backend/internal/model"
)

// Modulus is the prime used to derive result identifiers.
const Modulus = 1_000_000_007

var (
	// ErrInvalidTestID is returned when a test id is not a whole number.
	ErrInvalidTestID = errors.New("test_id must be an integer")
	// ErrTestIDRange is returned when a test id does not fit a stored id.
	ErrTestIDRange = errors.New("test_id is out of range")
	// ErrNoInverse is returned when the test id is a multiple of Modulus.
	ErrNoInverse = errors.New("no modular inverse exists")
)

var modulus = big.NewInt(Modulus)

// decimal matches plain decimal numbers such as 5.0 or 1e3. The exponent is
// capped at three digits so a crafted id cannot expand into a huge integer.
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?$`)

// ParseTestID parses an integer-like test id. Surrounding whitespace and a
// leading sign are accepted and the value may exceed 64 bits. Decimal forms
// are accepted when they hold a whole number, so 5.0 and 1e3 parse while
// 5.5 does not.
func ParseTestID(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n, nil
	}

	if decimal.MatchString(s) {
		if r, ok := new(big.Rat).SetString(s); ok && r.IsInt() {
			return new(big.Int).Set(r.Num()), nil
		}
	}
	return nil, fmt.Errorf("%w: got %q", ErrInvalidTestID, raw)
}

// ModInverse returns x in [1, Modulus) such that n*x ≡ 1 (mod Modulus).
func ModInverse(n *big.Int) (int64, error) {
	r := new(big.Int).Mod(n, modulus)
	if r.Sign() == 0 {
		return 0, fmt.Errorf("%w for %s modulo %d", ErrNoInverse, n, Modulus)
	}

	inv := new(big.Int).ModInverse(r, modulus)
	if inv == nil {
		return 0, fmt.Errorf("%w for %s modulo %d", ErrNoInverse, n, Modulus)
	}
	return inv.Int64(), nil
}

// ResponseID derives the result identifier of a submission from its test id
// and returns the parsed test id alongside it.
//
// The mapping is deterministic: every submission for the same test gets the
// same identifier. Test ids outside the int64 range fail with ErrTestIDRange.
func ResponseID(raw string) (responseID, testID int64, err error) {
	n, err := ParseTestID(raw)
	if err != nil {
		return 0, 0, err
	}
	if !n.IsInt64() {
		return 0, 0, fmt.Errorf("%w: %s", ErrTestIDRange, n)
	}

	responseID, err = ModInverse(n)
	if err != nil {
		return 0, 0, err
	}
	return responseID, n.Int64(), nil
}

// CalculateMarks counts the responses whose selected option equals the
// correct option. Labels compare as JSON values, so 1 matches 1 but not "1".
func CalculateMarks(items []model.ResponseItem) int {
	marks := 0
	for _, item := range items {
		if item.SelectedOption.Equal(item.CorrectOption) {
			marks++
		}
	}
	return marks
}
