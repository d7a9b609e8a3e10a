package tasks

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

type task struct {
	ID          string  `json:"id"`
	TodoListID  string  `json:"todo_list_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
		Long:  "Create, show and delete tasks inside your todo lists.",
	}

	tasksCmd.AddCommand(listTasksCmd(), addTaskCmd(), showTaskCmd(), deleteTaskCmd())
	root.GetRoot().AddCommand(tasksCmd)
}

// ==========================
// List Tasks
// ==========================
func listTasksCmd() *cobra.Command {
	var listID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the tasks in a list",
		Run: func(cmd *cobra.Command, args []string) {
			if listID == "" {
				fmt.Println("Error: --list is required")
				return
			}

			var tasks []task
			if err := doRequest("GET", "/lists/"+listID+"/tasks/", nil, &tasks); err != nil {
				fmt.Println("Error:", err)
				return
			}

			if asJSON {
				data, _ := json.MarshalIndent(tasks, "", "  ")
				fmt.Println(string(data))
				return
			}

			rows := make([][]interface{}, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []interface{}{t.ID, t.Name, deref(t.Status), t.CreatedAt})
			}
			output.RenderTable([]string{"ID", "NAME", "STATUS", "CREATED"}, rows)
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "ID of the todo list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")

	return cmd
}

// ==========================
// Add Task
// ==========================
func addTaskCmd() *cobra.Command {
	var listID, name, description, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listID == "" || name == "" {
				return fmt.Errorf("--list and --name are required")
			}

			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			if status != "" {
				payload["status"] = status
			}

			var created task
			if err := doRequest("POST", "/lists/"+listID+"/tasks/", payload, &created); err != nil {
				return err
			}

			fmt.Printf("Task %q created (id %s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "ID of the todo list")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&status, "status", "", "Optional free-text status")

	return cmd
}

// ==========================
// Show Task
// ==========================
func showTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t task
			if err := doRequest("GET", "/tasks/"+args[0], nil, &t); err != nil {
				return err
			}

			fmt.Printf("%s\n  list:        %s\n  description: %s\n  status:      %s\n  created:     %s\n",
				t.Name, t.TodoListID, deref(t.Description), deref(t.Status), t.CreatedAt)
			return nil
		},
	}
}

// ==========================
// Delete Task
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doRequest("DELETE", "/tasks/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("Task deleted.")
			return nil
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
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
