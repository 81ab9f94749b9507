package mongodb

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// partitionIndex maps an id onto one of count buckets. FNV-1a keeps the
// mapping stable across processes and restarts, which matters because every
// reader must land on the same collection the writer used.
func partitionIndex(id uuid.UUID, count int) int {
	h := fnv.New32a()
	h.Write([]byte(id.String()))
	return int(h.Sum32() % uint32(count))
}

func partitionName(prefix string, id uuid.UUID, count int) string {
	return fmt.Sprintf("%s%d", prefix, partitionIndex(id, count))
}
