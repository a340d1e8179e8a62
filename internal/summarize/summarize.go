package summarize

import (
	"context"

	cerrors "github.com/matheus3301/catchup/internal/errors"
)

const preamble = "Here is the chat export:\n\n"

// instruction fixes the output structure the model is asked for.
const instruction = "You are an assistant that reads an iMessage group chat export and returns a compact, bullet-point 'catch-up' summary.\n" +
	"Output structure:\n" +
	"1) 6-12 bullet points summarizing what happened (decisions, dates, plans, action items, drama/highlights).\n" +
	"2) A short 'Who said what' section listing notable speakers and their short positions.\n" +
	"3) Explicit list of action items with assignees and deadlines (if present in text).\n" +
	"Be concise and only include what is contained in the messages. Use ISO dates when present."

// Generator abstracts the text generation backend so the client can be
// exercised without network access.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// Client requests catch-up summaries from a generative text service.
type Client struct {
	gen   Generator
	model string
}

// NewClient creates a summarizer client for the given model id.
func NewClient(gen Generator, model string) *Client {
	return &Client{gen: gen, model: model}
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

// BuildPrompt assembles the single-request prompt: preamble, transcript,
// then the instruction block.
func BuildPrompt(transcript string) string {
	return preamble + transcript + "\n\n" + instruction
}

// Summarize sends the transcript in one synchronous request and returns the
// response text verbatim. Every failure maps to SERVICE; nothing is retried
// or partially parsed here.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	out, err := c.gen.GenerateText(ctx, c.model, BuildPrompt(transcript))
	if err != nil {
		return "", cerrors.NewService(err)
	}
	return out, nil
}
