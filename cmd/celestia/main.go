// Command celestia is the solar system catalog toolchain: it loads,
// validates, inspects, indexes, and watches .ssc catalog files.
package main

import "github.com/LBV2012-26/Celestia/cmd"

func main() {
	cmd.Execute()
}
