// Command viewbind inspects and renders the warehouse views: the fields the
// binder sees on a type, how a view pairs with a source, and the JSON a bound
// view renders to.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("viewbind: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
