// docchat is a terminal client for a document question-answering backend.
package main

import "github.com/diogo/docchat/internal/commands"

func main() {
	commands.Execute()
}
