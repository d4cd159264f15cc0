// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import "github.com/z5labs/conduit/internal/cli"

func main() {
	cli.Execute()
}
