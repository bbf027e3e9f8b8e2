package main

import "github.com/withgalaxy/trackly/pkg/cli"

func main() {
	cli.Execute()
}
