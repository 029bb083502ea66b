package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/debemdeboas/guidebot/internal/generate"
)

// Interactive harness for the generation gateway: type guide titles,
// read the generated markdown. Useful for tuning the prompt without a
// running bot. Uses the mock client when GENERATION_API_KEY is unset.
func main() {
	_ = godotenv.Load()

	var client generate.Client
	apiKey := os.Getenv("GENERATION_API_KEY")
	if apiKey == "" {
		fmt.Println("GENERATION_API_KEY not set; using mock generator.")
		client = generate.Mock{}
	} else {
		model := os.Getenv("GENERATION_MODEL")
		if model == "" {
			model = "llama-3.1-8b-instant"
		}
		var err error
		client, err = generate.NewOpenAIClient(generate.OpenAISettings{
			Model:   model,
			APIKey:  apiKey,
			BaseURL: os.Getenv("GENERATION_BASE_URL"),
		})
		if err != nil {
			fmt.Println("Error building client:", err)
			os.Exit(1)
		}
	}

	// Define Lipgloss styles
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	outputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	fmt.Println("Enter guide titles one by one. Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(promptStyle.Render("Guide title: "))

		if !scanner.Scan() {
			break // Exit on EOF (e.g., Ctrl+D or Ctrl+Z)
		}

		title := strings.TrimSpace(scanner.Text())
		if title == "" {
			continue
		}
		if title == "quit" {
			break
		}

		text, err := client.Generate(context.Background(), title)
		if err != nil {
			fmt.Println(outputStyle.Render("Error: " + err.Error()))
			continue
		}

		fmt.Println(outputStyle.Render(text))
	}

	if err := scanner.Err(); err != nil {
		fmt.Println("Error reading input:", err)
	}
}
