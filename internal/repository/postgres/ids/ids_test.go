package ids

import "testing"

func TestValid(t *testing.T) {
	if !Valid("0b6f6f0e-8b0a-4f4e-9a57-1c1b2f9f3e10") {
		t.Fatalf("expected uuid to be valid")
	}
	for _, in := range []string{"", "missing", "64b7f0c2a1e4c3f1d2e5a6b7"} {
		if Valid(in) {
			t.Fatalf("expected %q to be invalid", in)
		}
	}
}
