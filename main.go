// remesh is a command line bridge around an external field-guided
// retopology executable: it exports a mesh to an exchange file, runs
// the tool, and imports the result.
package main

import (
	"github.com/limbicnation/remesh/cmd"
)

func main() {
	cmd.Execute()
}
