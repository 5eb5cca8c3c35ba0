package sharelink

import (
	"encoding/base64"
	"reflect"
	"testing"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := analyzer.DealInputs{
		Mode:           analyzer.ModeInvestor,
		Market:         "calgary",
		PropertyType:   analyzer.PropertyDetached,
		Price:          450000,
		DownPaymentPct: 0.20,
		InterestRate:   4.1,
		Units: []analyzer.RentalUnit{
			{Type: market.Unit3Bed},
			{Type: market.Unit2BedLegal, Rent: 1400, OwnerOccupied: true},
		},
	}

	token, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, in)
	}
}

func TestDecodeToleratesUnknownFields(t *testing.T) {
	payload := `{"v":7,"inputs":{"price":300000,"futureField":"ignored"},"extra":true}`
	token := base64.RawURLEncoding.EncodeToString([]byte(payload))

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Price != 300000 {
		t.Errorf("Price = %v, expected 300000", got.Price)
	}
	// Missing fields stay zero; the engine applies defaults downstream.
	if got.Market != "" || got.InterestRate != 0 {
		t.Errorf("unset fields should stay zero: %+v", got)
	}
}

func TestDecodePaddedBase64(t *testing.T) {
	payload := `{"v":1,"inputs":{"price":280000}}`
	token := base64.StdEncoding.EncodeToString([]byte(payload))

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode padded token: %v", err)
	}
	if got.Price != 280000 {
		t.Errorf("Price = %v, expected 280000", got.Price)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "!!!!", "bm90LWpzb24"} {
		if _, err := Decode(token); err == nil {
			t.Errorf("Decode(%q) succeeded, expected error", token)
		}
	}
}

func TestDecodedTokenAnalyzes(t *testing.T) {
	token, err := Encode(analyzer.DealInputs{Price: 300000})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	in, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m := analyzer.Analyze(in)
	if m.Inputs.Price != 300000 {
		t.Errorf("analyzed price = %v, expected 300000", m.Inputs.Price)
	}
	if m.Inputs.Market == "" {
		t.Error("engine should default the unset market")
	}
}
