// Command premiere runs the movie premiere platform: an HTTP API server,
// an interactive console menu, and one-shot management commands, all backed
// by the same flat-file data directory.
package main

import "github.com/marquee/premiere-engine/cli"

func main() {
	cli.Execute()
}
