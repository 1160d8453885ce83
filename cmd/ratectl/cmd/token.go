package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourpricing/internal/pkg/jwt"
)

var (
	tokenOperator int64
	tokenRole     string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long: `Issue a signed bearer token for the HTTP API using JWT_SECRET and JWT_TTL.

Operator tokens may change rates, itineraries and snapshots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenRole != jwt.RoleOperator && tokenRole != jwt.RoleViewer {
			return fmt.Errorf("unsupported role: %s (use %s or %s)", tokenRole, jwt.RoleOperator, jwt.RoleViewer)
		}
		token, err := jwt.New(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(tokenOperator, tokenRole)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().Int64Var(&tokenOperator, "operator", 0, "operator id [REQUIRED]")
	tokenCmd.Flags().StringVar(&tokenRole, "role", jwt.RoleOperator, "token role (operator, viewer)")
	tokenCmd.MarkFlagRequired("operator")
}
