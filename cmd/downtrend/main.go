package main

import "DowntrendAnalyzer/internal/cli"

func main() {
	cli.Execute()
}
