package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value string
		code  string
		want  string
	}{
		{"1.5", "AUD", "$1.50"},
		{"1234567.891", "AUD", "$1,234,567.89"},
		{"0", "NZD", "$0.00"},
		{"1000", "JPY", "¥1,000"},
		{"12.5", "XXZ", "12.50 XXZ"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.value, func(t *testing.T) {
			if got := formatAmount(decimal.RequireFromString(tt.value), tt.code); got != tt.want {
				t.Fatalf("formatAmount(%s, %s) = %q, want %q", tt.value, tt.code, got, tt.want)
			}
		})
	}
}

func TestLookupCmd(t *testing.T) {
	out, err := executeCmd(t, "lookup", "au", "abn", "51824753556")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"AU ABN: Australian Business Number", "Formatted: 51 824 753 556"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLookupCmd_Unknown(t *testing.T) {
	if _, err := executeCmd(t, "lookup", "fr", "siren"); err == nil {
		t.Fatal("expected error for unknown identifier type")
	}
}

func TestEntityTypeCmd(t *testing.T) {
	out, err := executeCmd(t, "entity-type", "gb", "plc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Public Limited Company") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestHoldingsCmd(t *testing.T) {
	var gotPath, gotClass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotClass = r.URL.Query().Get("securityClassId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"memberId":"m-1","memberName":"Alice","summaries":[` +
			`{"securityClassId":"sc-1","securityClassName":"Ordinary","securityClassSymbol":"ORD",` +
			`"totalQuantity":70,"totalAmountPaid":"100","totalAmountUnpaid":"0","currency":"AUD","trancheCount":1}],` +
			`"transactions":[]}}`))
	}))
	defer srv.Close()

	out, err := executeCmd(t, "--url", srv.URL, "holdings", "m-1", "--class", "sc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/registry/members/m-1/holdings" || gotClass != "sc-1" {
		t.Fatalf("unexpected request: %s ?securityClassId=%s", gotPath, gotClass)
	}
	for _, want := range []string{"Member: Alice (m-1)", "Ordinary (ORD)", "70", "$100.00", "$0.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHoldingsCmd_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"member not found"}`))
	}))
	defer srv.Close()

	_, err := executeCmd(t, "--url", srv.URL, "holdings", "missing")
	if err == nil || !strings.Contains(err.Error(), "member not found") {
		t.Fatalf("expected member not found error, got %v", err)
	}
}
