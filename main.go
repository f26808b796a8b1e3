package main

import (
	"github.com/ColonelBlimp/morsemelody/cmd"
	"github.com/ColonelBlimp/morsemelody/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
