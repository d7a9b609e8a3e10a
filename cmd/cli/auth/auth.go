package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/todo-api/cmd/cli/config"
)

// InitAuth registers account-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), whoamiCmd())
}

func registerCmd() *cobra.Command {
	var login string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long:  "Create a new account on the todo API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" || password == "" {
				return fmt.Errorf("--login and --password are required")
			}

			var out struct {
				ID    string `json:"id"`
				Login string `json:"login"`
			}
			payload := map[string]string{"login": login, "password": password}
			if err := postJSON("/users/", payload, &out); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			fmt.Printf("Account %s created (id %s). You can now login.\n", out.Login, out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")

	return cmd
}

// loginCmd authenticates with the form-encoded login endpoint and stores the
// bearer token locally for subsequent CLI commands.
func loginCmd() *cobra.Command {
	var login string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the todo API",
		Long:  "Authenticate with the todo API and store a bearer token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" || password == "" {
				return fmt.Errorf("--login and --password are required")
			}

			form := url.Values{}
			form.Set("username", login)
			form.Set("password", password)

			resp, err := http.Post(
				config.APIURL()+"/users/login",
				"application/x-www-form-urlencoded",
				strings.NewReader(form.Encode()),
			)
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var out struct {
				AccessToken string `json:"access_token"`
			}
			if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// logoutCmd only removes the local token; the server keeps no session state
// and the token itself stays valid until it expires.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Long:  "Remove the locally saved bearer token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in (run 'todoctl login')")
			}

			req, err := http.NewRequest("GET", config.APIURL()+"/users/me", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var out struct {
				ID        string `json:"id"`
				Login     string `json:"login"`
				CreatedAt string `json:"created_at"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}
			fmt.Printf("%s (id %s, created %s)\n", out.Login, out.ID, out.CreatedAt)
			return nil
		},
	}
}

func postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", config.APIURL()+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}

	return nil
}
