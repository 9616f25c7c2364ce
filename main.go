package main

import "github.com/fernandocarvalhocms-dotcom/CMS-RD/cmd"

func main() {
	cmd.Execute()
}
