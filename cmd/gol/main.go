package main

import "github.com/jaydenlee09/GameOfLife/cmd/gol/root"

func main() {
	root.Execute()
}
