// main.go
//
// Entry point; everything lives in internal/cli.

package main

import "github.com/robalobadob/wordle/apps/solo/internal/cli"

func main() {
	cli.Execute()
}
