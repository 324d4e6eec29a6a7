package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== INVOICE NUMBER ====================

// GenerateInvoiceNo creates an invoice number for a booking issued at now.
// Format: INV-YYYYMMDD-<booking id as 32 upper hex>, unique per booking.
func GenerateInvoiceNo(bookingID uuid.UUID, now time.Time) string {
	hex := strings.ReplaceAll(bookingID.String(), "-", "")
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), strings.ToUpper(hex))
}
