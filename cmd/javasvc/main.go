package main

import "github.com/munichmade/javasvc/cmd/javasvc/cmd"

func main() {
	cmd.Execute()
}
