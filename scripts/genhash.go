// One-off: go run scripts/genhash.go <password>
// Prints a hex salt and hash pair for seeding an admin user by hand.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/AlyonaQA/ptm-server/internal/auth"
)

func main() {
	password := "admin"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	salt, err := auth.NewSalt()
	if err != nil {
		panic(err)
	}
	hash := auth.HashPassword(password, salt)
	fmt.Printf("salt=%s\nhash=%s\n", hex.EncodeToString(salt), hex.EncodeToString(hash))
}
