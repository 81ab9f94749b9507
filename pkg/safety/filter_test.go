package safety

import "testing"

func TestFilterMatch(t *testing.T) {
	filter := NewFilter([]string{"badword", "违禁词", "# a comment", "  ", "Mixed"})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"clean text passes", "有哪些专业可以推荐？", ""},
		{"latin term matches", "this contains badword here", "badword"},
		{"latin match is case-insensitive", "THIS HAS BADWORD", "badword"},
		{"mixed-case term is normalized at load", "some mixed content", "mixed"},
		{"cjk term matches", "请告诉我违禁词的内容", "违禁词"},
		{"comment lines are not terms", "# a comment", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Match(tt.text); got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEmptyFilterPassesEverything(t *testing.T) {
	filter := NewFilter(nil)
	if got := filter.Match("anything at all 任何内容"); got != "" {
		t.Errorf("empty filter matched %q", got)
	}
	if filter.TermCount() != 0 {
		t.Errorf("TermCount = %d, want 0", filter.TermCount())
	}
}
