package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camgriff/feyfocus/internal/db"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		projects, err := db.GetProjects()
		if err != nil {
			fmt.Printf("Error fetching projects: %v\n", err)
			return
		}

		if len(projects) == 0 {
			fmt.Println("No projects yet. Assign one to a document or use 'feyfocus projects add <name>'.")
			return
		}

		for _, project := range projects {
			fmt.Printf("%-4d %s\n", project.ID, project.Name)
		}
	}),
}

var projectsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		name := args[0]

		// Adding an existing project is a benign no-op
		existing, err := db.GetProjects()
		if err != nil {
			fmt.Printf("Error fetching projects: %v\n", err)
			return
		}
		for _, project := range existing {
			if project.Name == name {
				fmt.Printf("Project %q already exists (#%d)\n", name, project.ID)
				return
			}
		}

		project, err := db.CreateProject(name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created project %q (#%d)\n", project.Name, project.ID)
	}),
}

func init() {
	projectsCmd.AddCommand(projectsAddCmd)
}
