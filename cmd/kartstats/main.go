package main

import (
	"fmt"
	"os"
	"strings"
)

const usage = `usage: kartstats [command] [flags]

commands:
  serve      run the HTTP API (default)
  recommend  print ranked character and vehicle pairings
  search     read queries from stdin and print debounced matches
  backup     archive the database and config file
  restore    restore a backup archive
  version    print version information
`

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		runServe(args)
	case "recommend":
		runRecommend(args)
	case "search":
		runSearch(args)
	case "backup":
		runBackup(args)
	case "restore":
		runRestore(args)
	case "version":
		runVersion()
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}
