package main

import "github.com/lukman83/otzyv-scrap/cmd"

func main() {
	cmd.Execute()
}
