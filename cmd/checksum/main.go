// ════════════════════════════════════════════════════════════════════════════════════════════════
// MODULAR CHECKSUM — CLI
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Foundational Data Structures
// Component: Stdin/Stdout Driver for the Block-Decomposition Checksum
//
// Description:
//   Reads one integer n from stdin, writes compute(n) to stdout.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/nyxlabs/coreds/checksum"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	var n int64
	if _, err := fmt.Fscan(reader, &n); err != nil {
		log.Fatalf("checksum: reading n: %v", err)
	}

	fmt.Println(checksum.Compute(n))
}
