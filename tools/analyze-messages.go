//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// CapturedMessage matches the per-message JSON lines written when
// TILEPAD_LOG_LEVEL=debug is set and the channel log is redirected to
// a file.
type CapturedMessage struct {
	Timestamp string `json:"ts"`
	Direction string `json:"direction"`
	Payload   string `json:"payload"`
}

// envelope extracts just the wire discriminator.
type envelope struct {
	Type string `json:"type"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze-messages <jsonl-file>")
		fmt.Println("Example: analyze-messages captures/session-20260830.jsonl")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	lines := strings.Split(string(data), "\n")
	fmt.Printf("=== Tilepad Channel Analyzer ===\n")
	fmt.Printf("File: %s\n\n", filename)

	typeCounts := make(map[string]int)
	directionCounts := make(map[string]int)
	var firstState, lastState string
	parsed := 0

	for i, line := range lines {
		if line == "" {
			continue
		}

		var msg CapturedMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			fmt.Printf("Error parsing line %d: %v\n", i+1, err)
			continue
		}
		parsed++
		directionCounts[msg.Direction]++

		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil || env.Type == "" {
			typeCounts["<malformed>"]++
			continue
		}
		typeCounts[env.Type]++

		if env.Type == "STATE" {
			var state struct {
				State string `json:"state"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &state); err == nil {
				if firstState == "" {
					firstState = state.State
				}
				lastState = state.State
			}
		}
	}

	fmt.Printf("Messages: %d (%d sent, %d received)\n\n",
		parsed, directionCounts["sent"], directionCounts["received"])

	fmt.Println("Message types:")
	types := make([]string, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return typeCounts[types[i]] > typeCounts[types[j]]
	})
	for _, t := range types {
		fmt.Printf("  %-20s %d\n", t, typeCounts[t])
	}

	if firstState != "" {
		fmt.Printf("\nConnection state: %s -> %s\n", firstState, lastState)
	}
}
