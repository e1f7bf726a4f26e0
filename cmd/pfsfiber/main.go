// Public domain.

// Command pfsfiber assigns PFI fibers to catalog targets across a
// sequence of exposures. See internal/pfsprog for the implementation.
package main

import "pfsfiber/internal/pfsprog"

func main() {
	pfsprog.Main()
}
