package booking

import (
	"encoding/json"
	"testing"
)

func TestAddressAcceptsStringOrObject(t *testing.T) {
	var a Address
	if err := json.Unmarshal([]byte(`"55 King St W, Toronto"`), &a); err != nil {
		t.Fatalf("string address: %v", err)
	}
	if a.Street != "55 King St W, Toronto" {
		t.Errorf("street = %q", a.Street)
	}

	var b Address
	if err := json.Unmarshal([]byte(`{"street":"123 Main Street","city":"Toronto","province":"ON","zipCode":"M1M 1M1"}`), &b); err != nil {
		t.Fatalf("object address: %v", err)
	}
	if got := b.String(); got != "123 Main Street, Toronto, ON, M1M 1M1" {
		t.Errorf("display = %q", got)
	}
}

func TestServiceLinesJSONBRoundTrip(t *testing.T) {
	lines := ServiceLines{
		{Name: "Essentials Package", Price: 229.99, Count: 1, Total: 229.99},
		{Name: "Virtual Twilight", Price: 49.99, Count: 2, Total: 99.98},
	}

	val, err := lines.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var scanned ServiceLines
	if err := scanned.Scan(val); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(scanned) != 2 || scanned[1].Total != 99.98 {
		t.Errorf("round trip = %+v", scanned)
	}
}

func TestSizeValueAcceptsNumbers(t *testing.T) {
	var payload struct {
		Size SizeValue `json:"property_size"`
	}

	if err := json.Unmarshal([]byte(`{"property_size":1800}`), &payload); err != nil {
		t.Fatalf("numeric size: %v", err)
	}
	if payload.Size != "1800" {
		t.Errorf("size = %q", payload.Size)
	}

	if err := json.Unmarshal([]byte(`{"property_size":"1500-2499 sq.ft."}`), &payload); err != nil {
		t.Fatalf("string size: %v", err)
	}
	if payload.Size != "1500-2499 sq.ft." {
		t.Errorf("size = %q", payload.Size)
	}
}
