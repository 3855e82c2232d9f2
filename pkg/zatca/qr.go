package zatca

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// TLV tags defined by the ZATCA simplified tax invoice QR specification.
const (
	TagSellerName = 1
	TagVATNumber  = 2
	TagTimestamp  = 3
	TagTotal      = 4
	TagVATAmount  = 5
)

// maxFieldLen is the TLV single-byte length limit.
const maxFieldLen = 255

var (
	// ErrFieldTooLong is returned when a field value exceeds the one-byte TLV length.
	ErrFieldTooLong = errors.New("zatca: field value exceeds 255 bytes")
	// ErrMalformedPayload is returned when a payload cannot be parsed as TLV.
	ErrMalformedPayload = errors.New("zatca: malformed TLV payload")
)

// Invoice holds the fields encoded into a phase-1 simplified invoice QR code.
// Total and VATAmount are preformatted decimal strings (e.g. "1035.00").
type Invoice struct {
	SellerName string
	VATNumber  string
	Timestamp  time.Time
	Total      string
	VATAmount  string
}

// EncodeQR encodes the invoice as Base64(TLV tags 1-5) per the ZATCA
// simplified invoice QR specification.
func EncodeQR(inv Invoice) (string, error) {
	fields := []struct {
		tag   byte
		value string
	}{
		{TagSellerName, inv.SellerName},
		{TagVATNumber, inv.VATNumber},
		{TagTimestamp, inv.Timestamp.UTC().Format(time.RFC3339)},
		{TagTotal, inv.Total},
		{TagVATAmount, inv.VATAmount},
	}

	var buf []byte
	for _, f := range fields {
		b := []byte(f.value)
		if len(b) > maxFieldLen {
			return "", fmt.Errorf("%w: tag %d", ErrFieldTooLong, f.tag)
		}
		buf = append(buf, f.tag, byte(len(b)))
		buf = append(buf, b...)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeQR parses a Base64 TLV payload back into its tagged fields.
// Used by the print path and by verification tooling.
func DecodeQR(payload string) (map[byte]string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	fields := make(map[byte]string)
	for i := 0; i < len(raw); {
		if i+2 > len(raw) {
			return nil, ErrMalformedPayload
		}
		tag := raw[i]
		length := int(raw[i+1])
		i += 2
		if i+length > len(raw) {
			return nil, ErrMalformedPayload
		}
		fields[tag] = string(raw[i : i+length])
		i += length
	}

	return fields, nil
}
