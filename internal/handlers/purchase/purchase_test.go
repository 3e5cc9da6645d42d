package purchase

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotationNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^QTN-\d{6}$`)

	now := time.Now()
	assert.Regexp(t, pattern, quotationNumber(now))

	// Small millisecond remainders still pad to six digits.
	early := time.UnixMilli(1_000_042)
	assert.Equal(t, "QTN-000042", quotationNumber(early))
}

func TestQuotationNumberChangesWithClock(t *testing.T) {
	a := quotationNumber(time.UnixMilli(1_711_111_111_111))
	b := quotationNumber(time.UnixMilli(1_711_111_111_112))
	assert.NotEqual(t, a, b)
}
