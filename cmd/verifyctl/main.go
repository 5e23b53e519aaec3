// Command verifyctl is the CLI front-end for the replay verifier. It is a
// thin adapter: all it does is parse flags, load a session file, call
// verify.VerifySession, and render the result. It carries no verification
// logic of its own.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "verify":
		err = runVerify(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "history":
		err = runHistory(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "verifyctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  verifyctl verify [-format text|json] [-config path] [-record label] <session.json>
  verifyctl batch [-config path] [-concurrency N] <dir>
  verifyctl history [-config path]`)
}
