// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command authctl is the operator CLI for credentials and access tokens.
package main

import "github.com/taibuivan/odrzavanje/internal/cli"

func main() {
	cli.Execute()
}
