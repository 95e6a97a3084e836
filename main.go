// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/bocukit/bocu1/cmd/bocu1"

func main() {
	cmd.Execute()
}
