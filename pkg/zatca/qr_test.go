package zatca

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeQRRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	payload, err := EncodeQR(Invoice{
		SellerName: "Najm Field Services LLC",
		VATNumber:  "310122393500003",
		Timestamp:  ts,
		Total:      "1035.00",
		VATAmount:  "135.00",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	fields, err := DecodeQR(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := fields[TagSellerName]; got != "Najm Field Services LLC" {
		t.Fatalf("seller name: got %q", got)
	}
	if got := fields[TagVATNumber]; got != "310122393500003" {
		t.Fatalf("vat number: got %q", got)
	}
	if got := fields[TagTimestamp]; got != "2025-03-14T09:30:00Z" {
		t.Fatalf("timestamp: got %q", got)
	}
	if got := fields[TagTotal]; got != "1035.00" {
		t.Fatalf("total: got %q", got)
	}
	if got := fields[TagVATAmount]; got != "135.00" {
		t.Fatalf("vat amount: got %q", got)
	}
}

func TestEncodeQRArabicSellerName(t *testing.T) {
	// Arabic seller names are multi-byte; the TLV length is in bytes, not runes.
	payload, err := EncodeQR(Invoice{
		SellerName: "شركة نجم للخدمات الميدانية",
		VATNumber:  "310122393500003",
		Timestamp:  time.Now(),
		Total:      "100.00",
		VATAmount:  "15.00",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fields, err := DecodeQR(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fields[TagSellerName] != "شركة نجم للخدمات الميدانية" {
		t.Fatalf("seller name mangled: %q", fields[TagSellerName])
	}
}

func TestEncodeQRFieldTooLong(t *testing.T) {
	_, err := EncodeQR(Invoice{
		SellerName: strings.Repeat("x", 300),
		VATNumber:  "1",
		Timestamp:  time.Now(),
		Total:      "1.00",
		VATAmount:  "0.15",
	})
	if err == nil {
		t.Fatal("expected error for oversized field")
	}
}

func TestDecodeQRMalformed(t *testing.T) {
	if _, err := DecodeQR("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	// Truncated TLV: tag+length promise more bytes than present.
	if _, err := DecodeQR("AQX/"); err == nil {
		t.Fatal("expected error for truncated TLV")
	}
}
