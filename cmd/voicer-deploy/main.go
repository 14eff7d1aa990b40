package main

import (
	"github.com/voicerhq/voicer-deploy/cmd/voicer-deploy/cmd"
)

func main() {
	cmd.Execute()
}
