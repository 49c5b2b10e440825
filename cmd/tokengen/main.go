// Package main provides a CLI tool for generating API tokens for scoregate.
// Tokens are digests of the configured salts, so the output only works
// against a server running with the same SALT/ADMIN_SALT values.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"scoregate/internal/platform/config"
	"scoregate/internal/rpc"
)

type tokenOutput struct {
	Token   string `json:"token"`
	Login   string `json:"login"`
	Account string `json:"account,omitempty"`
	Note    string `json:"note,omitempty"`
}

func main() {
	account := flag.String("account", "", "account field of the request envelope")
	login := flag.String("login", "", "login field of the request envelope (use admin for the admin token)")
	asJSON := flag.Bool("json", false, "output as JSON")
	flag.Parse()

	if *login == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -login <login> [-account <account>] [-json]")
		os.Exit(2)
	}

	cfg := config.FromEnv()

	out := tokenOutput{Login: *login, Account: *account}
	if *login == rpc.AdminLogin {
		out.Token = rpc.AdminDigest(time.Now(), cfg.AdminSalt)
		out.Note = "admin tokens rotate on the hour boundary"
	} else {
		out.Token = rpc.UserDigest(*account, *login, cfg.Salt)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}
	fmt.Println(out.Token)
}
