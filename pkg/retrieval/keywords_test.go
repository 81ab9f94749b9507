package retrieval

import (
	"reflect"
	"testing"
)

func TestTokenizeLatin(t *testing.T) {
	got := Tokenize("Computer Science admission requirements")
	want := []string{"computer", "science", "admission", "requirements"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeCJKBigrams(t *testing.T) {
	got := Tokenize("计算机专业")
	want := []string{"计算", "算机", "机专", "专业"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeMixed(t *testing.T) {
	got := Tokenize("AI 方向")
	want := []string{"ai", "方向"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestOverlapScore(t *testing.T) {
	tokens := Tokenize("计算机专业的就业方向")

	high := OverlapScore(tokens, "计算机专业毕业生的就业方向包括软件开发")
	low := OverlapScore(tokens, "食堂菜单每周更新")
	if high <= low {
		t.Errorf("relevant document scored %d, irrelevant %d", high, low)
	}
	if low != 0 {
		t.Errorf("irrelevant document should score 0, got %d", low)
	}
}

func TestKeywordsMax(t *testing.T) {
	text := "招生 招生 招生 专业 专业 校区 报名 咨询 电话 地址 费用 宿舍"
	got := Keywords(text, 8)
	if len(got) > 8 {
		t.Errorf("Keywords returned %d terms, max 8", len(got))
	}
	if got[0] != "招生" {
		t.Errorf("most frequent term should rank first, got %q", got[0])
	}
}
