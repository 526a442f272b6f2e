package calltype

import (
	"errors"
	"testing"
)

func TestBase_IMSVariantsShareIcon(t *testing.T) {
	pairs := []struct {
		plain, ims Code
		want       Category
	}{
		{Incoming, IncomingIMS, CategoryIncoming},
		{Outgoing, OutgoingIMS, CategoryOutgoing},
		{Missed, MissedIMS, CategoryMissed},
	}
	for _, p := range pairs {
		if got := Base(p.plain); got != p.want {
			t.Fatalf("Base(%v)=%v, want %v", p.plain, got, p.want)
		}
		if got := Base(p.ims); got != p.want {
			t.Fatalf("Base(%v)=%v, want %v", p.ims, got, p.want)
		}
	}
	if got := Base(Voicemail); got != CategoryVoicemail {
		t.Fatalf("Base(voicemail)=%v", got)
	}
}

func TestBase_UnknownIsMissed(t *testing.T) {
	for _, c := range []Code{0, -1, 8, 42, 1000} {
		if got := Base(c); got != CategoryMissed {
			t.Fatalf("Base(%d)=%v, want missed", int(c), got)
		}
		if Known(c) {
			t.Fatalf("expected %d to be unknown", int(c))
		}
	}
}

func TestIMS(t *testing.T) {
	for _, c := range Codes() {
		cat, ok := IMS(c)
		wantOK := c == IncomingIMS || c == OutgoingIMS || c == MissedIMS
		if ok != wantOK {
			t.Fatalf("IMS(%v) ok=%v, want %v", c, ok, wantOK)
		}
		if ok && cat != CategoryIMS {
			t.Fatalf("IMS(%v)=%v, want ims", c, cat)
		}
	}
	if _, ok := IMS(99); ok {
		t.Fatalf("expected unknown code to have no IMS icon")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Code
		wantErr bool
	}{
		{"1", Incoming, false},
		{" 7 ", MissedIMS, false},
		{"42", 42, false},
		{"missed", Missed, false},
		{"Outgoing_IMS", OutgoingIMS, false},
		{"incoming ims", IncomingIMS, false},
		{"VOICEMAIL", Voicemail, false},
		{"", 0, true},
		{"rejected", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownCode) {
				t.Fatalf("Parse(%q) err=%v, want ErrUnknownCode", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("1,missed  5")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	want := []Code{Incoming, Missed, IncomingIMS}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if _, err := ParseList("1,nope"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestStrings(t *testing.T) {
	if MissedIMS.String() != "missed-ims" {
		t.Fatalf("unexpected name %q", MissedIMS.String())
	}
	if Code(12).String() != "12" {
		t.Fatalf("unexpected name %q", Code(12).String())
	}
	if CategoryWifi.String() != "wifi" {
		t.Fatalf("unexpected name %q", CategoryWifi.String())
	}
	if len(Categories()) != 7 {
		t.Fatalf("expected 7 categories")
	}
}
