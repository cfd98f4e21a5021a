package main

import (
	"fmt"

	"github.com/HerbHall/kartstats/internal/version"
)

func runVersion() {
	fmt.Println(version.Info())
}
