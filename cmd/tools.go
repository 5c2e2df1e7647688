package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parlance-ai/parlance/internal/dependency"
	"github.com/parlance-ai/parlance/internal/dialect"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the tool registry",
}

func init() {
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsAdvertiseCmd)
	toolsCmd.AddCommand(toolsJSONCmd)
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	RunE: func(_ *cobra.Command, _ []string) error {
		container, err := dependency.New("")
		if err != nil {
			return err
		}
		reg, err := container.Registry()
		if err != nil {
			return err
		}
		if reg.Len() == 0 {
			fmt.Println("No tools registered.")
			return nil
		}
		for _, t := range reg.All() {
			fmt.Printf("%-12s %s\n", t.Name(), t.Description())
		}
		return nil
	},
}

var toolsAdvertiseDialect string

var toolsAdvertiseCmd = &cobra.Command{
	Use:   "advertise",
	Short: "Print the system prompt sent to the model",
	RunE: func(_ *cobra.Command, _ []string) error {
		container, err := dependency.New("")
		if err != nil {
			return err
		}
		reg, err := container.Registry()
		if err != nil {
			return err
		}

		p, err := container.Parser()
		if err != nil {
			return err
		}
		if toolsAdvertiseDialect != "" {
			p, err = dialect.New(toolsAdvertiseDialect)
			if err != nil {
				return err
			}
		}

		sys, err := p.SystemMessage(reg)
		if err != nil {
			return err
		}
		fmt.Println(sys.Content)
		return nil
	},
}

func init() {
	toolsAdvertiseCmd.Flags().StringVarP(&toolsAdvertiseDialect, "dialect", "d", "", "Dialect to render (defaults to config)")
}

var toolsJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Print the raw tool declarations as JSON",
	RunE: func(_ *cobra.Command, _ []string) error {
		container, err := dependency.New("")
		if err != nil {
			return err
		}
		reg, err := container.Registry()
		if err != nil {
			return err
		}
		decl, err := dialect.Declarations(reg)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(json.RawMessage(decl), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
