package main

import "github.com/mj1618/a11ybridge/cmd"

func main() {
	cmd.Execute()
}
