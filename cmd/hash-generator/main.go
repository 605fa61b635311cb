// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding users by hand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/widget-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
