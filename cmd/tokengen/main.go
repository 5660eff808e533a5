// Package main provides a CLI tool for generating test tokens and operator
// keys for the aegis API. These tokens use the dev signing key and will NOT
// work against a production deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"aegis/internal/session/token"
	id "aegis/pkg/domain"
	"aegis/pkg/secrets"
)

const (
	// Dev signing key - matches config.go when JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultIssuer   = "https://aegis.local"
	defaultAudience = "aegis-api"
	defaultTokenTTL = 30 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	accessCmd := flag.NewFlagSet("access", flag.ExitOnError)
	accessAccountID := accessCmd.String("account-id", "", "Account ID (UUID). Generated if empty.")
	accessVersion := accessCmd.Int64("security-version", 0, "Security version to stamp into the token")
	accessTTL := accessCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	accessKey := accessCmd.String("signing-key", devSigningKey, "HMAC signing key")
	accessJSON := accessCmd.Bool("json", false, "Output as JSON")

	adminKeyCmd := flag.NewFlagSet("admin-key", flag.ExitOnError)
	adminKeyJSON := adminKeyCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "access":
		accessCmd.Parse(os.Args[2:])
		generateAccessToken(*accessAccountID, *accessVersion, *accessTTL, *accessKey, *accessJSON)
	case "admin-key":
		adminKeyCmd.Parse(os.Args[2:])
		generateAdminKey(*adminKeyJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens and operator keys for the aegis API

WARNING: Tokens minted here use the dev signing key and will NOT be honored
         by a production deployment. The server also rejects any access token
         whose record it has no row for, so minted tokens only pass the
         signature layer; use them for parser and middleware testing.

Usage:
  tokengen <command> [flags]

Commands:
  access     Generate an access token (JWT)
  admin-key  Generate an operator key and its bcrypt hash

Examples:
  # Generate access token for a random account
  tokengen access

  # Generate access token for a specific account at security version 3
  tokengen access -account-id "550e8400-e29b-41d4-a716-446655440000" -security-version 3

  # Generate an admin key; export the hash as ADMIN_API_KEY_HASH
  tokengen admin-key

Use "tokengen <command> -h" for more information about a command.`)
}

func generateAccessToken(accountIDInput string, version int64, ttl time.Duration, signingKey string, jsonOutput bool) {
	accountID := id.NewAccountID()
	if accountIDInput != "" {
		parsed, err := id.ParseAccountID(accountIDInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid account-id: %s\n", accountIDInput)
			os.Exit(1)
		}
		accountID = parsed
	}

	svc := token.NewService(signingKey, defaultIssuer, defaultAudience, ttl)
	signed, jti, err := svc.GenerateAccessToken(context.Background(), accountID, version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     signed,
			Type:      "access_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"account_id":       accountID.String(),
				"security_version": version,
				"jti":              jti,
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Access Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Expires In:       %s\n", ttl)
	fmt.Printf("Account ID:       %s\n", accountID)
	fmt.Printf("Security Version: %d\n", version)
	fmt.Printf("JTI:              %s\n", jti)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(signed)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/me")
}

func generateAdminKey(jsonOutput bool) {
	key, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	hash, err := secrets.Hash(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token: key,
			Type:  "admin_key",
			Usage: map[string]string{
				"header": "X-Admin-Key: " + key,
				"env":    "ADMIN_API_KEY_HASH='" + hash + "'",
			},
		})
		return
	}

	fmt.Println("Admin API Key")
	fmt.Println("=============")
	fmt.Printf("Key:  %s\n", key)
	fmt.Printf("Hash: %s\n", hash)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export ADMIN_API_KEY_HASH='" + hash + "'")
	fmt.Println("  curl -H \"X-Admin-Key: " + key + "\" http://localhost:8080/admin/blocks")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
