package main

import "github.com/polyglot-study/frictionscan/cmd"

func main() {
	cmd.Execute()
}
