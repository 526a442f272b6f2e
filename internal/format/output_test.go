package format

import (
	"bytes"
	"strings"
	"testing"
)

type textPayload struct {
	N int `json:"n"`
}

func (p textPayload) Text() string { return "n is 1" }

func TestWrite(t *testing.T) {
	cases := []struct {
		name, format string
		pretty       bool
		v            any
		want         string
		wantErr      bool
	}{
		{"json compact", "json", false, map[string]int{"n": 1}, "{\"n\":1}\n", false},
		{"json default format", "", false, textPayload{N: 1}, "{\"n\":1}\n", false},
		{"json pretty", "json", true, map[string]int{"n": 1}, "{\n  \"n\": 1\n}\n", false},
		{"text via Texter", "text", false, textPayload{N: 1}, "n is 1\n", false},
		{"text fallback", "text", false, map[string]int{"n": 1}, "{\n  \"n\": 1\n}\n", false},
		{"unknown", "edn", false, nil, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tc.v, tc.format, tc.pretty)
			if tc.wantErr {
				if err == nil || !strings.Contains(err.Error(), "unknown format") {
					t.Fatalf("expected unknown format error; got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if buf.String() != tc.want {
				t.Fatalf("got %q, want %q", buf.String(), tc.want)
			}
		})
	}
}
