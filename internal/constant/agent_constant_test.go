package constant

import "testing"

func TestParseAgentLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  AgentLabel
	}{
		{"recommend", "RECOMMEND", LabelRecommend},
		{"reservation", "RESERVATION", LabelReservation},
		{"school query", "SCHOOL_QUERY", LabelSchoolQuery},
		{"maps query", "MAPS_QUERY", LabelMapsQuery},
		{"route is never a target", "ROUTE", LabelDefault},
		{"lowercase is not a match", "recommend", LabelDefault},
		{"free text falls back", "用户想了解专业信息", LabelDefault},
		{"partial token falls back", "RECOM", LabelDefault},
		{"label embedded in text falls back", "I think RECOMMEND fits", LabelDefault},
		{"empty falls back", "", LabelDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAgentLabel(tt.input); got != tt.want {
				t.Errorf("ParseAgentLabel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
