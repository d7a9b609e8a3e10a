package lists

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/todo-api/cmd/cli/config"
	"github.com/crucial707/todo-api/cmd/cli/output"
	"github.com/crucial707/todo-api/cmd/cli/root"
)

type todoList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage todo lists",
		Long:  "Create, show and delete the todo lists owned by the logged-in account.",
	}

	listsCmd.AddCommand(listListsCmd(), createListCmd(), deleteListCmd())
	root.GetRoot().AddCommand(listsCmd)
}

// ==========================
// List Lists
// ==========================
func listListsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your todo lists",
		Run: func(cmd *cobra.Command, args []string) {
			var lists []todoList
			if err := doRequest("GET", "/lists/", nil, &lists); err != nil {
				fmt.Println("Error:", err)
				return
			}

			if asJSON {
				data, _ := json.MarshalIndent(lists, "", "  ")
				fmt.Println(string(data))
				return
			}

			rows := make([][]interface{}, 0, len(lists))
			for _, l := range lists {
				rows = append(rows, []interface{}{l.ID, l.Name, l.CreatedAt})
			}
			output.RenderTable([]string{"ID", "NAME", "CREATED"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")

	return cmd
}

// ==========================
// Create List
// ==========================
func createListCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a todo list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			var created todoList
			if err := doRequest("POST", "/lists/", map[string]string{"name": name}, &created); err != nil {
				return err
			}

			fmt.Printf("List %q created (id %s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new list")

	return cmd
}

// ==========================
// Delete List
// ==========================
func deleteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo list and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doRequest("DELETE", "/lists/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("List deleted.")
			return nil
		},
	}
}

// ==========================
// Request Helper
// ==========================
func doRequest(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := config.LoadToken(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
