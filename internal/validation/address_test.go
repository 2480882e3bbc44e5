package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func validAddress() models.Address {
	return models.Address{
		Line1:      "1 Market St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94105",
		Country:    "US",
		Phone:      "+1 415 555 0100",
	}
}

func TestValidateAddressAcceptsWellFormed(t *testing.T) {
	addr := validAddress()
	assert.False(t, ValidateAddress(&addr).HasErrors())
}

func TestValidateAddressRequiredFields(t *testing.T) {
	addr := models.Address{}
	errs := ValidateAddress(&addr)

	require.True(t, errs.HasErrors())
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["line1"])
	assert.True(t, fields["city"])
	assert.True(t, fields["postalCode"])
	assert.True(t, fields["country"])
}

func TestValidateAddressPostalCodeByCountry(t *testing.T) {
	addr := validAddress()
	addr.PostalCode = "ABC"
	errs := ValidateAddress(&addr)

	require.True(t, errs.HasErrors())
	assert.Equal(t, "postalCode", errs[0].Field)
	assert.Equal(t, "INVALID_FORMAT", errs[0].Code)

	// Unknown countries skip the postal code format check.
	addr.Country = "ZZ"
	assert.False(t, ValidateAddress(&addr).HasErrors())
}

func TestValidateAddressRejectsDangerousCharacters(t *testing.T) {
	addr := validAddress()
	addr.Line1 = `<script>alert('x')</script>`
	errs := ValidateAddress(&addr)

	require.True(t, errs.HasErrors())
	assert.Equal(t, "INVALID_CHARS", errs[0].Code)
}

func TestSanitizeAddressNormalizes(t *testing.T) {
	addr := models.Address{
		Line1:      "  1 Market St  ",
		City:       " San Francisco ",
		PostalCode: " 94105 ",
		Country:    " us ",
	}
	SanitizeAddress(&addr)

	assert.Equal(t, "1 Market St", addr.Line1)
	assert.Equal(t, "San Francisco", addr.City)
	assert.Equal(t, "94105", addr.PostalCode)
	assert.Equal(t, "US", addr.Country)
}
