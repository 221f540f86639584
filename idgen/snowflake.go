package idgen

import (
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

func Init() {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

func GenerateID() int64 {
	return node.Generate().Int64()
}

// GenerateLPNs issues count pallet identifiers from the shared node.
// Snowflake IDs are monotonic per node, so concurrent callers can never
// receive overlapping ranges and an LPN is never reused.
func GenerateLPNs(count int) []string {
	if count <= 0 {
		return nil
	}
	lpns := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lpns = append(lpns, "LPN"+strings.ToUpper(node.Generate().Base36()))
	}
	return lpns
}
