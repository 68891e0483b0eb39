package main

import "github.com/target/storefront-client/cmd/storefront/cmd"

func main() {
	cmd.Execute()
}
