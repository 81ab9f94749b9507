package mongodb

import (
	"fmt"
	"testing"

	"admissions-ai-be/internal/constant"

	"github.com/google/uuid"
)

func TestPartitionIndexStability(t *testing.T) {
	// The same id must land on the same partition every time, or readers and
	// writers diverge.
	for i := 0; i < 100; i++ {
		id := uuid.New()
		first := partitionIndex(id, constant.MsgCollectionCount)
		for j := 0; j < 10; j++ {
			if got := partitionIndex(id, constant.MsgCollectionCount); got != first {
				t.Fatalf("partitionIndex(%s) changed between calls: %d then %d", id, first, got)
			}
		}
	}
}

func TestPartitionIndexBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := uuid.New()
		if got := partitionIndex(id, constant.ChatCollectionCount); got < 0 || got >= constant.ChatCollectionCount {
			t.Fatalf("partitionIndex(%s, %d) = %d, out of range", id, constant.ChatCollectionCount, got)
		}
	}
}

func TestPartitionName(t *testing.T) {
	id := uuid.MustParse("018f3b5e-0000-7000-8000-000000000001")
	want := fmt.Sprintf("%s%d", constant.MsgCollectionPrefix, partitionIndex(id, constant.MsgCollectionCount))

	if name := partitionName(constant.MsgCollectionPrefix, id, constant.MsgCollectionCount); name != want {
		t.Fatalf("partitionName = %q, want %q", name, want)
	}
}
