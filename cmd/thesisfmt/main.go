// Command thesisfmt is a local, non-networked driver for the compiler,
// useful for development and CI smoke-testing without the job-control
// HTTP surface.
package main

import "github.com/vortex/docx-api/internal/cli"

func main() {
	cli.Execute()
}
