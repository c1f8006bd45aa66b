package main

import "github.com/wormhole-foundation/stone-prover-sdk/cmd"

func main() {
	cmd.Execute()
}
