package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alcyxob/exercise-discovery/internal/api"
	"alcyxob/exercise-discovery/internal/config"
	"alcyxob/exercise-discovery/internal/domain"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Preview the search terms a session would process",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := termsQuery(cmd)
		if err != nil {
			return err
		}
		resp, err := newClient().PreviewTerms(context.Background(), q)
		if err != nil {
			return err
		}
		gray := color.New(color.FgHiBlack).SprintFunc()
		for i, t := range resp.Terms {
			fmt.Printf("%s %s\n", gray(fmt.Sprintf("%3d.", i+1)), t)
		}
		fmt.Printf("\n%d terms\n", resp.Count)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint a bearer token signed with the server's JWT secret",
	Long: `Mint a bearer token for operator use. The secret is read from --secret,
or from the service configuration (config.yaml / JWT_SECRET).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		role, _ := cmd.Flags().GetString("role")
		if secret == "" {
			cfg, err := config.LoadConfig(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			secret = cfg.JWT.Secret
		}
		tok, err := api.GenerateToken(secret, args[0], domain.Role(role), ttl)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	addTermsFlags(termsCmd)

	tokenCmd.Flags().String("secret", "", "JWT signing secret")
	tokenCmd.Flags().String("role", string(domain.RoleAdmin), "Role claim: admin or coach")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")

	rootCmd.AddCommand(termsCmd, tokenCmd)
}

func addTermsFlags(cmd *cobra.Command) {
	cmd.Flags().String("sport", "", "Sport filter")
	cmd.Flags().String("component", "", "Fitness component filter")
	cmd.Flags().String("purpose", "", "Purpose filter")
	cmd.Flags().Int("max-terms", 0, "Cap the number of terms")
	cmd.Flags().Bool("variations", false, "Include variation terms")
	cmd.Flags().Bool("priority-only", false, "Only high-relevance families")
	cmd.Flags().Bool("test", false, "Apply the test-mode term cap")
}

func termsQuery(cmd *cobra.Command) (url.Values, error) {
	flags := cmd.Flags()
	q := url.Values{}
	for flag, param := range map[string]string{"sport": "sport", "component": "component", "purpose": "purpose"} {
		if v, _ := flags.GetString(flag); v != "" {
			q.Set(param, v)
		}
	}
	maxTerms, _ := flags.GetInt("max-terms")
	if maxTerms < 0 {
		return nil, fmt.Errorf("--max-terms must not be negative")
	}
	if maxTerms > 0 {
		q.Set("maxTerms", strconv.Itoa(maxTerms))
	}
	for flag, param := range map[string]string{"variations": "includeVariations", "priority-only": "priorityOnly", "test": "testMode"} {
		if v, _ := flags.GetBool(flag); v {
			q.Set(param, "true")
		}
	}
	return q, nil
}
