package main

import (
	"fmt"
	"os"

	"github.com/liberforce/blog2pelican/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var cmd *cli.ImportCommand
	switch command {
	case "dotclear":
		cmd = cli.NewDotclearCommand()
	case "wordpress":
		cmd = cli.NewWordPressCommand()
	case "medium":
		cmd = cli.NewMediumCommand()
	case "tumblr":
		cmd = cli.NewTumblrCommand()
	case "feed":
		cmd = cli.NewFeedCommand()
	case "blogger":
		cmd = cli.NewBloggerCommand()

	case "version", "-v", "--version":
		fmt.Printf("blog2pelican %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Import a blog export into Pelican content files.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  dotclear   Import a Dotclear export file\n")
	fmt.Fprintf(os.Stderr, "  wordpress  Import a WordPress XML export\n")
	fmt.Fprintf(os.Stderr, "  medium     Import a Medium export directory\n")
	fmt.Fprintf(os.Stderr, "  tumblr     Import a Tumblr blog through its API\n")
	fmt.Fprintf(os.Stderr, "  blogger    Import a Blogger XML export\n")
	fmt.Fprintf(os.Stderr, "  feed       Import any RSS or Atom feed\n")
	fmt.Fprintf(os.Stderr, "  version    Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
