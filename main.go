package main

import "github.com/naka-gawa/dockerhub-pulls/cmd"

func main() {
	cmd.Execute()
}
