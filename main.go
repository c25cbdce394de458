package main

import "github.com/zinc-sig/summon/cmd"

func main() {
	cmd.Execute()
}
