package main

import "github.com/caedis/fabric-mod-manager/cmd"

func main() {
	cmd.Execute()
}
