package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose_Structure(t *testing.T) {
	faq := "Q: Hours?\nA: 9 to 5."
	got := Compose(faq, "When are you open?")

	assert.True(t, strings.HasPrefix(got, "You are a friendly and helpful assistant"))
	assert.Contains(t, got, "FAQs:\n"+faq+"\n\n")
	assert.Contains(t, got, "you can only provide information from the FAQs")
	assert.True(t, strings.HasSuffix(got, "User: When are you open?\n"))

	iFAQ := strings.Index(got, faq)
	iRule := strings.Index(got, "Do not make up information")
	iUser := strings.Index(got, "User: ")
	assert.True(t, iFAQ < iRule && iRule < iUser, "preamble, corpus, constraint, message order")
}

func TestCompose_Idempotent(t *testing.T) {
	a := Compose(DefaultFAQ, "What payment methods do you accept?")
	b := Compose(DefaultFAQ, "What payment methods do you accept?")
	assert.Equal(t, a, b)
}

func TestCompose_IncludesWholeCorpus(t *testing.T) {
	got := Compose(DefaultFAQ, "hi")
	assert.Contains(t, got, DefaultFAQ)
}

func TestDefaultFAQ_Embedded(t *testing.T) {
	assert.Contains(t, DefaultFAQ, "Q: What are your business hours?")
	assert.Contains(t, DefaultFAQ, "Q: Do you offer gift cards or vouchers?")
}
