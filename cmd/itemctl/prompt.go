package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// terminalPrompter confirms each consumption step on a line based terminal.
// An empty answer keeps the default and "q" cancels the use.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in *bufio.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: in, out: out}
}

func (p *terminalPrompter) PromptUsage(ctx context.Context, it *entities.Item, cfg *usage.Config) (*usage.Config, error) {
	confirmed := *cfg
	fmt.Fprintf(p.out, "Using %s (q to cancel)\n", it.Name)

	steps := []struct {
		question string
		enabled  *bool
	}{
		{"Spend the recharge", &confirmed.ConsumeRecharge},
		{"Consume the linked resource", &confirmed.ConsumeResource},
		{"Spend a spell slot", &confirmed.ConsumeSpellSlot},
		{"Spend a use", &confirmed.ConsumeUsage},
		{"Reduce the quantity", &confirmed.ConsumeQuantity},
		{"Place a template", &confirmed.CreateMeasuredTemplate},
	}
	for _, step := range steps {
		if !*step.enabled {
			continue
		}
		answer, err := p.ask(ctx, step.question+"? [Y/n] ")
		if err != nil {
			return nil, err
		}
		if answer == "q" {
			return nil, nil
		}
		*step.enabled = answer != "n" && answer != "no"
	}

	if confirmed.ConsumeSpellSlot {
		answer, err := p.ask(ctx, fmt.Sprintf("Slot level [%s]: ", confirmed.SlotLevel))
		if err != nil {
			return nil, err
		}
		switch answer {
		case "q":
			return nil, nil
		case "":
		default:
			confirmed.SlotLevel = answer
		}
	}

	return &confirmed, nil
}

// ask reads one answer. End of input counts as accepting the default.
func (p *terminalPrompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
