// Package main is the entry point for the milbstats CLI tool, which
// tracks minor-league prospects' game logs and computes splits,
// percentiles, league baselines, and leaderboards.
package main

import "github.com/comcgovern/go-milb-metrics/cmd"

func main() {
	cmd.Execute()
}
