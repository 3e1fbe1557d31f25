package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/types"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Long:  "Hashes a password with the configured bcrypt cost and pepper, for hand-edited users files.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

var addUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Add or update a user in the directory",
	Long:  "Adds a user to the users file, or to PostgreSQL with --database. An existing user with the same email is replaced.",
	RunE:  runAddUser,
}

var (
	addUserFile     string
	addUserEmail    string
	addUserRole     string
	addUserPassword string
	addUserDatabase bool
)

func init() {
	addUserCmd.Flags().StringVar(&addUserFile, "file", "", "Users file (default: RESUME_EDITOR_USERS_FILE)")
	addUserCmd.Flags().StringVarP(&addUserEmail, "email", "e", "", "User email (required)")
	addUserCmd.Flags().StringVarP(&addUserRole, "role", "r", string(types.RoleUser), "Role: admin or user")
	addUserCmd.Flags().StringVarP(&addUserPassword, "password", "p", "", "Password (required)")
	addUserCmd.Flags().BoolVar(&addUserDatabase, "database", false, "Write to the PostgreSQL directory at RESUME_EDITOR_DATABASE_URL")
	_ = addUserCmd.MarkFlagRequired("email")
	_ = addUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(addUserCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	passwordConfig, err := cfg.Password()
	if err != nil {
		return err
	}
	hash, err := passwordConfig.HashPassword(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runAddUser(cmd *cobra.Command, _ []string) error {
	role := types.Role(strings.ToLower(addUserRole))
	if role != types.RoleAdmin && role != types.RoleUser {
		return fmt.Errorf("unknown role %q (want admin or user)", addUserRole)
	}
	email := strings.TrimSpace(addUserEmail)
	if email == "" || addUserPassword == "" {
		return fmt.Errorf("email and password are required")
	}

	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	passwordConfig, err := cfg.Password()
	if err != nil {
		return err
	}
	hash, err := passwordConfig.HashPassword(addUserPassword)
	if err != nil {
		return err
	}

	if addUserDatabase {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("%s_DATABASE_URL is required with --database", config.EnvPrefix)
		}
		ctx := context.Background()
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := database.CreateUser(ctx, email, role, hash); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) to database\n", email, role)
		return nil
	}

	path := addUserFile
	if path == "" {
		path = cfg.UsersFile
	}
	if err := db.UpsertUserFile(path, db.User{Email: email, Role: role, PasswordHash: hash}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) to %s\n", email, role, path)
	return nil
}
