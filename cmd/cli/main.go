package main

import (
	"errors"
	"fmt"
	"os"

	"site-classifier/internal/crawler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, crawler.ErrSetup) {
			fmt.Fprintln(os.Stderr, "Setup Error:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
