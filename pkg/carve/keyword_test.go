package carve

import "testing"

func TestKeywordFilterEmpty(t *testing.T) {
	f := NewKeywordFilter(nil)
	if !f.Match([]byte("anything at all")) {
		t.Error("empty filter should match everything")
	}
}

func TestKeywordFilterMatch(t *testing.T) {
	f := NewKeywordFilter([]string{"password", "token"})

	tests := []struct {
		body string
		want bool
	}{
		{"user PASSWORD field", true},
		{"an api_token here", true},
		{"nothing interesting", false},
	}
	for _, tt := range tests {
		if got := f.Match([]byte(tt.body)); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestKeywordFilterNilReceiver(t *testing.T) {
	var f *KeywordFilter
	if !f.Match([]byte("anything")) {
		t.Error("nil filter should match everything")
	}
}
