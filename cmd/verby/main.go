// Command verby is a flashcard trainer for irregular verb forms.
package main

import "github.com/mesh-intelligence/verby/internal/cli"

func main() {
	cli.Execute()
}
