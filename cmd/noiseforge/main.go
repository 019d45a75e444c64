package main

import "github.com/forgeworks/noiseforge/internal/cmd"

func main() {
	cmd.Execute()
}
