package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvestmentCompanyName(t *testing.T) {
	i := &InvestmentInquiry{}
	assert.Equal(t, "your organization", i.CompanyName())

	company := "Fund Capital"
	i.Company = &company
	assert.Equal(t, "Fund Capital", i.CompanyName())
}
