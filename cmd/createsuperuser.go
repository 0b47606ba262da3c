package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recipe-api/constants"
	"recipe-api/infra"
	"recipe-api/repositories"
	"recipe-api/services"
)

func createSuperuserCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff user with full privileges",
		Example: `  recipe-api createsuperuser --email admin@example.com --password s3cretpass
  RECIPE_SUPERUSER_PASSWORD=s3cretpass recipe-api createsuperuser --email admin@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("RECIPE_SUPERUSER_PASSWORD")
			}
			if email == "" {
				return errors.New("--email is required")
			}
			if len(password) < constants.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := infra.SetupDB(cfg.Database, logger)
			if err != nil {
				return err
			}

			userService := services.NewUserService(repositories.NewUserRepository(db), logger)
			user, err := userService.CreateSuperuser(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the new superuser")
	cmd.Flags().StringVar(&password, "password", "", "password (falls back to RECIPE_SUPERUSER_PASSWORD)")
	return cmd
}
