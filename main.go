package main

import "github.com/josephgoksu/codecrew/cmd"

func main() {
	cmd.Execute()
}
