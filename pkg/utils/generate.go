package utils

import (
	"strings"

	"github.com/google/uuid"
)

const (
	registrationUIDPrefix = "BE"
	invoicePrefix         = "Inv"
	shortIDLength         = 5
)

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:shortIDLength]
}

// GenerateRegistrationUID returns the student-facing id, e.g. BE3f9a1.
func GenerateRegistrationUID() string {
	return registrationUIDPrefix + shortID()
}

// GenerateInvoiceNumber returns the merchant invoice reference sent to the gateway.
func GenerateInvoiceNumber() string {
	return invoicePrefix + shortID()
}
