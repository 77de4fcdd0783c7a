package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/config"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/server"
)

// tokenCMD mints an admin JWT from the configured secret, or hashes a
// password for server.admin_password_hash.
func tokenCMD() *cobra.Command {
	var cfgPath string
	var subject string
	var ttl time.Duration
	var hashPassword string
	var token = &cobra.Command{
		Use:   "token",
		Short: "Mint an admin JWT or hash an admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if hashPassword != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(hashPassword), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				fmt.Println(string(hash))
				return nil
			}

			cfg := config.LoadConfig(cfgPath)
			if cfg.Server.JWTSecret == "" {
				return fmt.Errorf("server.jwt_secret not configured")
			}
			if ttl == 0 {
				ttl = cfg.Server.TokenTTL
			}
			signed, err := server.SignJWT(subject, []byte(cfg.Server.JWTSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Println(signed)
			return nil
		},
	}
	token.Flags().StringVar(&subject, "subject", "admin", "token subject")
	token.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default server.token_ttl)")
	token.Flags().StringVar(&hashPassword, "hash-password", "", "print a bcrypt hash for this password and exit")
	token.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return token
}
