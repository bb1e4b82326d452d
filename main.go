package main

import "github.com/litedoc/litedoc/cmd"

func main() {
	cmd.Execute()
}
