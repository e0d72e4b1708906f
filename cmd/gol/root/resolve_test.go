package root

import "testing"

func TestResolveID(t *testing.T) {
	ids := []string{"a1b2c3d4-0000", "a1ffffff-1111", "run_3km"}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "a1b", want: "a1b2c3d4-0000"},
		{in: "run_3km", want: "run_3km"},
		{in: "a1", wantErr: true},
		{in: "zz", wantErr: true},
		{in: "  ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveID("task", tt.in, ids)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("resolveID(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("resolveID(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("resolveID(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0d4c9a2e-5f1b-4a57-9a1e-7e5f1f2a3b4c"); got != "0d4c9a2e" {
		t.Fatalf("shortID uuid=%q", got)
	}
	if got := shortID("no_phone_day"); got != "no_phone_day" {
		t.Fatalf("shortID pool id=%q", got)
	}
}
