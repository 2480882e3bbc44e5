// Package validation checks checkout payloads before they leave for the
// backend, so obviously broken addresses fail fast with field-level
// errors instead of a round trip.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"storefront-service/internal/models"
)

// AddressValidationError represents a validation error with field details
type AddressValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e AddressValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AddressValidationErrors is a collection of validation errors
type AddressValidationErrors []AddressValidationError

func (e AddressValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are validation errors
func (e AddressValidationErrors) HasErrors() bool {
	return len(e) > 0
}

var (
	// ISO 3166-1 alpha-2 country code pattern
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

	// Phone number pattern (international format, flexible)
	phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,3}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}$`)

	// Postal code patterns by country (common ones)
	postalCodePatterns = map[string]*regexp.Regexp{
		"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
		"CA": regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`),
		"GB": regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`),
		"AU": regexp.MustCompile(`^\d{4}$`),
		"IN": regexp.MustCompile(`^\d{6}$`),
		"DE": regexp.MustCompile(`^\d{5}$`),
		"FR": regexp.MustCompile(`^\d{5}$`),
	}

	// Characters that could indicate SQL injection or XSS attempts
	dangerousCharsPattern = regexp.MustCompile(`[<>\"';\x00-\x1f]`)
)

// Field length limits
const (
	MaxLineLength       = 255
	MaxCityLength       = 100
	MaxStateLength      = 100
	MaxPostalCodeLength = 20
	MaxPhoneLength      = 50
)

// ValidateAddress validates a shipping address payload.
func ValidateAddress(address *models.Address) AddressValidationErrors {
	var errors AddressValidationErrors

	if strings.TrimSpace(address.Line1) == "" {
		errors = append(errors, AddressValidationError{
			Field:   "line1",
			Message: "Address line 1 is required",
			Code:    "REQUIRED",
		})
	}
	if strings.TrimSpace(address.City) == "" {
		errors = append(errors, AddressValidationError{
			Field:   "city",
			Message: "City is required",
			Code:    "REQUIRED",
		})
	}
	if strings.TrimSpace(address.PostalCode) == "" {
		errors = append(errors, AddressValidationError{
			Field:   "postalCode",
			Message: "Postal code is required",
			Code:    "REQUIRED",
		})
	}
	if strings.TrimSpace(address.Country) == "" {
		errors = append(errors, AddressValidationError{
			Field:   "country",
			Message: "Country is required",
			Code:    "REQUIRED",
		})
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"line1", address.Line1, MaxLineLength},
		{"line2", address.Line2, MaxLineLength},
		{"city", address.City, MaxCityLength},
		{"state", address.State, MaxStateLength},
		{"postalCode", address.PostalCode, MaxPostalCodeLength},
		{"phone", address.Phone, MaxPhoneLength},
	}
	for _, l := range lengths {
		if len(l.value) > l.max {
			errors = append(errors, AddressValidationError{
				Field:   l.field,
				Message: fmt.Sprintf("%s must not exceed %d characters", l.field, l.max),
				Code:    "MAX_LENGTH",
			})
		}
	}

	if address.Country != "" && !countryCodePattern.MatchString(strings.ToUpper(address.Country)) {
		errors = append(errors, AddressValidationError{
			Field:   "country",
			Message: "Country must be a valid 2-letter ISO country code (e.g., US, GB, AU)",
			Code:    "INVALID_FORMAT",
		})
	}

	if address.Phone != "" && !phonePattern.MatchString(address.Phone) {
		errors = append(errors, AddressValidationError{
			Field:   "phone",
			Message: "Phone number format is invalid",
			Code:    "INVALID_FORMAT",
		})
	}

	if address.Country != "" && address.PostalCode != "" {
		countryUpper := strings.ToUpper(address.Country)
		if pattern, ok := postalCodePatterns[countryUpper]; ok {
			if !pattern.MatchString(strings.ToUpper(address.PostalCode)) {
				errors = append(errors, AddressValidationError{
					Field:   "postalCode",
					Message: fmt.Sprintf("Invalid postal code format for %s", countryUpper),
					Code:    "INVALID_FORMAT",
				})
			}
		}
	}

	fieldsToCheck := map[string]string{
		"line1": address.Line1,
		"line2": address.Line2,
		"city":  address.City,
		"state": address.State,
	}
	for field, value := range fieldsToCheck {
		if dangerousCharsPattern.MatchString(value) {
			errors = append(errors, AddressValidationError{
				Field:   field,
				Message: "Contains invalid characters",
				Code:    "INVALID_CHARS",
			})
		}
	}

	return errors
}

// SanitizeAddress normalizes address fields in place.
func SanitizeAddress(address *models.Address) {
	address.Line1 = strings.TrimSpace(address.Line1)
	address.Line2 = strings.TrimSpace(address.Line2)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.PostalCode = strings.TrimSpace(strings.ToUpper(address.PostalCode))
	address.Country = strings.TrimSpace(strings.ToUpper(address.Country))
	address.Phone = strings.TrimSpace(address.Phone)
}
