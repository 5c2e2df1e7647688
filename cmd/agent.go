package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parlance-ai/parlance/internal/agent"
	"github.com/parlance-ai/parlance/internal/dependency"
)

var (
	agentMessage string
	agentDialect string
	agentModel   string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Interact with the agent",
	RunE:  runAgent,
}

func init() {
	agentCmd.Flags().StringVarP(&agentMessage, "message", "m", "", "Send a single message and exit")
	agentCmd.Flags().StringVarP(&agentDialect, "dialect", "d", "", "Override the configured dialect")
	agentCmd.Flags().StringVar(&agentModel, "model", "", "Override the configured model")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runAgent(_ *cobra.Command, _ []string) error {
	container, err := buildContainer()
	if err != nil {
		return err
	}

	convo, err := container.NewCoordinator()
	if err != nil {
		return err
	}

	if agentMessage != "" {
		return runSingleMessage(convo)
	}
	return runInteractive(convo)
}

// buildContainer wires the graph, applying CLI overrides on top of the
// loaded config.
func buildContainer() (*dependency.Container, error) {
	container, err := dependency.New("")
	if err != nil {
		return nil, err
	}
	if agentDialect != "" || agentModel != "" {
		cfg, err := container.Config()
		if err != nil {
			return nil, err
		}
		if agentDialect != "" {
			cfg.Agent.Dialect = agentDialect
		}
		if agentModel != "" {
			cfg.Agent.Model = agentModel
		}
		// The config instance is shared across providers, and nothing
		// downstream has been constructed yet, so the overrides take effect.
	}
	return container, nil
}

// runSingleMessage sends one message to the agent and prints the response.
func runSingleMessage(convo *agent.Coordinator) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Fprintf(os.Stderr, "  ↳ thinking...\n")
	resp, err := convo.Run(ctx, agentMessage)
	if err != nil {
		return err
	}
	printResponse(resp.Message.Content)
	return nil
}

// runInteractive starts the REPL loop: reads lines from stdin and runs each
// as one agent turn on a shared conversation.
func runInteractive(convo *agent.Coordinator) error {
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenForSignals(cancel)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		resp, err := convo.Run(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		printResponse(resp.Message.Content)
	}
}

// listenForSignals cancels ctx on SIGINT or SIGTERM and exits.
func listenForSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()
}

func printResponse(text string) {
	fmt.Printf("\n%s parlance\n%s\n\n", logo, text)
}
