// Command vcs is the command-line entry point, dispatching
// 'vcs <command> [<args>]' to the matching porcelain function.
package main

import (
	"fmt"
	"os"

	"vcs/porcelain"
)

func main() {
	if len(os.Args) == 1 {
		fmt.Println("vcs: command cannot be empty.")
		fmt.Println("usage: vcs <command> [<args>]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		porcelain.Init(os.Args[1:])
	case "add":
		porcelain.Add(os.Args[1:])
	case "rm":
		porcelain.Rm(os.Args[1:])
	case "update-index":
		porcelain.UpdateIndex(os.Args[1:])
	case "commit":
		porcelain.Commit(os.Args[1:])
	case "branch":
		porcelain.Branch(os.Args[1:])
	case "checkout":
		porcelain.Checkout(os.Args[1:])
	case "diff":
		porcelain.Diff(os.Args[1:])
	case "status":
		porcelain.Status(os.Args[1:])
	case "merge":
		porcelain.Merge(os.Args[1:])
	case "remote":
		porcelain.Remote(os.Args[1:])
	case "fetch":
		porcelain.Fetch(os.Args[1:])
	case "pull":
		porcelain.Pull(os.Args[1:])
	case "push":
		porcelain.Push(os.Args[1:])
	case "clone":
		porcelain.Clone(os.Args[1:])
	case "log":
		porcelain.Log(os.Args[1:])
	case "ls-files":
		porcelain.LsFiles(os.Args[1:])
	case "cat-file":
		porcelain.CatFile(os.Args[1:])
	case "hash-object":
		porcelain.HashObject(os.Args[1:])
	default:
		fmt.Printf("vcs: '%s' is not a vcs command.\n", os.Args[1])
		fmt.Println("usage: vcs <command> [<args>]")
		os.Exit(1)
	}
}
