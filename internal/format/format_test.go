package format

import (
	"bytes"
	"strings"
	"testing"
)

type step struct {
	N          int     `json:"n"`
	Wavelength float64 `json:"wavelength"`
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	v := Envelope{
		Data: map[string]any{"exciPath": []step{{N: 12, Wavelength: 480.5}}, "thz": nil},
		Meta: map[string]any{"state": "thz-ready"},
	}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:data {:exci-path [{:n 12 :wavelength 480.5}] :thz nil} :meta {:state "thz-ready"}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestWriteEDN_PrettyIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"rows": []int{1, 2}, "empty": []int{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :rows [\n    1\n    2\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty edn mismatch:\n%q\n%q", got, want)
	}
}

func TestWrite_JSONAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"data":1}` {
		t.Fatalf("unexpected json: %s", buf.String())
	}
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestKeyword(t *testing.T) {
	for in, want := range map[string]string{
		"lowerRydbergLevel": ":lower-rydberg-level",
		"n_upper":           ":n-upper",
		"x":                 ":x",
	} {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q) = %q; want %q", in, got, want)
		}
	}
}
