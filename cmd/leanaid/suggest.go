package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leanaid/leanaid-go/internal/adapters/llm"
	"github.com/leanaid/leanaid-go/internal/adapters/parser"
	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
	"github.com/leanaid/leanaid-go/internal/domain/usecases"
)

var (
	suggestGoal  string
	suggestError string
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <file.lean>",
	Short: "Print ranked suggestions for a proof file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		var inference ports.InferenceService
		if cfg.Ollama.Enabled {
			inference = llm.NewOllamaAdapter(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout())
		}
		suggestUC := usecases.NewSuggestUseCase(
			parser.NewLeanParser(), inference, cfg.Suggest.Limit, cfg.Ollama.Timeout(), nil)

		suggestions, err := suggestUC.Suggest(cmd.Context(), entities.SuggestRequest{
			ProofCode:    string(source),
			CurrentGoal:  suggestGoal,
			ErrorMessage: suggestError,
		})
		if err != nil {
			return err
		}

		if suggestJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(suggestions)
		}
		for i, s := range suggestions {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s (%.2f)\n", i+1, s.Type, s.Content, s.Confidence)
			if s.Explanation != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", s.Explanation)
			}
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestGoal, "goal", "", "Current proof goal")
	suggestCmd.Flags().StringVar(&suggestError, "error", "", "Compiler error message to address")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Emit JSON instead of text")
	rootCmd.AddCommand(suggestCmd)
}
