// Command devtoken mints an HS256 bearer token accepted when AUTH_PROVIDER=dev.
//
//	go run ./cmd/devtoken -sub fid1 -email jane@example.com
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"resume-booster/internal/shared/auth"
	"resume-booster/internal/shared/config"
)

func main() {
	sub := flag.String("sub", "", "subject, the firebaseId used at registration")
	email := flag.String("email", "", "email claim")
	name := flag.String("name", "", "name claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	token, err := auth.SignHMAC(cfg.JWTSecret, auth.Identity{Subject: *sub, Email: *email, Name: *name}, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
