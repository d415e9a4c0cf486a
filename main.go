package main

import "github.com/MuoDoo/riscv/cmd"

func main() {
	cmd.Execute()
}
