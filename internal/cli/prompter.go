package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phygon975/API-project/internal/cost"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
)

// Prompter implements the interactive review interface: each proposed
// classification is shown once and the operator accepts it or overrides
// its category, subtype, or material.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a CLI prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ReviewClassification shows one proposal and collects the reviewer's
// decision. Material changes accumulate locally; the request goes back in
// one piece once the reviewer accepts or changes the category.
func (p *Prompter) ReviewClassification(ctx context.Context, result model.ClassificationResult) (service.OverrideRequest, error) {
	var req service.OverrideRequest

	content := p.formatProposal(result)
	if _, err := fmt.Fprintln(p.writer, RenderBox("Device Review", content)); err != nil {
		return req, fmt.Errorf("failed to write review box: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return req, err
		}

		if _, err := fmt.Fprintln(p.writer,
			"  [A] Accept classification\n"+
				"  [C] Change category\n"+
				"  [S] Change subtype\n"+
				"  [M] Change material"); err != nil {
			return req, fmt.Errorf("failed to write options: %w", err)
		}

		choice, err := p.promptChoice(ctx, "Choice [A/C/S/M]", []string{"a", "c", "s", "m"})
		if err != nil {
			return req, err
		}

		switch choice {
		case "a":
			req.Accept = true
			return req, nil
		case "c":
			category, err := p.promptCategory(ctx)
			if err != nil {
				return req, err
			}
			req.Category = category
			// The engine asks for the new subtype via SelectSubtype.
			return req, nil
		case "s":
			subtype, err := p.promptFromList(ctx, "Subtype", cost.Subtypes(result.Category))
			if err != nil {
				return req, err
			}
			req.Subtype = subtype
			req.Accept = true
			return req, nil
		case "m":
			material, err := p.promptFromList(ctx, "Material", cost.MaterialCodes(result.Category, result.Subtype))
			if err != nil {
				return req, err
			}
			req.Material = material
			if _, err := fmt.Fprintln(p.writer, FormatSuccess("Material set to "+material)); err != nil {
				return req, fmt.Errorf("failed to write confirmation: %w", err)
			}
			// Back to the menu so the reviewer can still accept or
			// change the category of the same device.
		}
	}
}

// SelectSubtype collects the replacement subtype after a category change.
func (p *Prompter) SelectSubtype(ctx context.Context, result model.ClassificationResult, choices []string) (string, error) {
	if _, err := fmt.Fprintln(p.writer,
		FormatWarning(fmt.Sprintf("%s is now a %s; pick its subtype", result.BlockName, result.Category))); err != nil {
		return "", fmt.Errorf("failed to write subtype header: %w", err)
	}
	return p.promptFromList(ctx, "Subtype", choices)
}

// ShowSummary presents the final per-category totals.
func (p *Prompter) ShowSummary(_ context.Context, summary string) error {
	if _, err := fmt.Fprintln(p.writer, RenderBox("Estimation Summary", summary)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (p *Prompter) formatProposal(result model.ClassificationResult) string {
	header := TitleStyle.Render("Proposed: " + result.BlockName)

	subtype := result.Subtype
	if subtype == "" {
		subtype = SubtleStyle.Render("(none)")
	}
	material := result.Material
	if material == "" {
		material = SubtleStyle.Render("(default)")
	}

	details := fmt.Sprintf("%s Proposal:\n", InfoIcon) +
		fmt.Sprintf("  Category: %s\n", SuccessStyle.Render(string(result.Category))) +
		fmt.Sprintf("  Subtype: %s\n", subtype) +
		fmt.Sprintf("  Material: %s\n", material) +
		fmt.Sprintf("  Matched by: %s (%.0f%% confidence)", result.Tier, result.Confidence*100)

	return header + "\n\n" + details
}

// promptCategory offers every category, costable or not; reclassifying a
// device as ignored is a legitimate review outcome.
func (p *Prompter) promptCategory(ctx context.Context) (model.EquipmentCategory, error) {
	categories := model.AllCategories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	name, err := p.promptFromList(ctx, "Category", names)
	if err != nil {
		return "", err
	}
	return model.EquipmentCategory(name), nil
}

// promptFromList shows a numbered list and accepts either the number or
// the literal name. An empty list degrades to free-form input.
func (p *Prompter) promptFromList(ctx context.Context, label string, choices []string) (string, error) {
	for i, choice := range choices {
		if _, err := fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, choice); err != nil {
			return "", fmt.Errorf("failed to write choice: %w", err)
		}
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			continue
		}

		if n, err := strconv.Atoi(input); err == nil {
			if n >= 1 && n <= len(choices) {
				return choices[n-1], nil
			}
			if _, err := fmt.Fprintln(p.writer, FormatWarning(fmt.Sprintf("Pick 1-%d", len(choices)))); err != nil {
				return "", fmt.Errorf("failed to write warning: %w", err)
			}
			continue
		}

		if len(choices) == 0 {
			return input, nil
		}
		for _, choice := range choices {
			if strings.EqualFold(choice, input) {
				return choice, nil
			}
		}
		if _, err := fmt.Fprintln(p.writer, FormatWarning("Unknown choice: "+input)); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		input = strings.ToLower(input)
		for _, valid := range validChoices {
			if input == valid {
				return input, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning("Invalid choice, try again")); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("input terminated")
		}
		return "", err
	}
	return line, nil
}
