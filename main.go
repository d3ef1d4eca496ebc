package main

import "github.com/poppingmoon/slang/cmd"

func main() {
	cmd.Execute()
}
